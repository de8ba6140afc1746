// Command storefront serves the storefront HTTP API and offers catalog
// browsing from the command line.
//
// Command storefront 提供店面HTTP API，并支持从命令行浏览目录。
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
