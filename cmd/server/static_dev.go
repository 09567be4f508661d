//go:build !embed
// +build !embed

package main

import (
	"log"
	"net/http"
	"strings"

	"reiadvisor/web"

	"github.com/gin-gonic/gin"
)

// setupWeb configures templates and static files from the local web/
// directory. In gin debug mode templates are re-read on every request.
func setupWeb(router *gin.Engine) {
	log.Println("🔧 Using local filesystem for web assets (development mode)")
	log.Println("   Run from the repository root so ./web/templates resolves")

	router.SetFuncMap(web.Funcs())
	router.LoadHTMLGlob("./web/" + web.TemplatePattern)
	router.Static("/static", "./web/static")

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.Redirect(http.StatusFound, "/")
	})
}
