package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Humphrey-He/storefront/internal/service"
)

// CartHandler handles HTTP requests for cart sessions and checkout.
//
// CartHandler 处理购物车会话和结账的HTTP请求。
type CartHandler struct {
	service *service.StoreService
}

// NewCartHandler creates a new cart handler with the given service.
func NewCartHandler(service *service.StoreService) *CartHandler {
	return &CartHandler{service: service}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CreateCart handles POST /api/cart.
func (h *CartHandler) CreateCart(c *gin.Context) {
	id := h.service.CreateCart()
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

// GetCart handles GET /api/cart/:session.
func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.service.Cart(c.Param("session"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddItem handles POST /api/cart/:session/items.
// Contact-priced products answer 202 with the phone to call instead of adding a line.
//
// AddItem 处理POST /api/cart/:session/items。
// 询价商品返回202和应拨打的电话，而不是添加购物车行。
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.service.AddToCart(c.Param("session"), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if out.Phone != "" {
		status = http.StatusAccepted
	}
	c.JSON(status, out)
}

// UpdateItem handles PUT /api/cart/:session/items/:id.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	view, err := h.service.UpdateCartItem(c.Param("session"), c.Param("id"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveItem handles DELETE /api/cart/:session/items/:id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.service.RemoveCartItem(c.Param("session"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Checkout handles POST /api/cart/:session/checkout.
// Validation failures answer 422 with the offending field.
//
// Checkout 处理POST /api/cart/:session/checkout。
// 验证失败时返回422和出错的字段。
func (h *CartHandler) Checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.service.Checkout(c.Request.Context(), c.Param("session"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
