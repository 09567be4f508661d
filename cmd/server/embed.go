//go:build embed
// +build embed

package main

import (
	"log"
	"net/http"
	"strings"

	"reiadvisor/web"

	"github.com/gin-gonic/gin"
)

// setupWeb configures templates and static files from the embedded web assets
func setupWeb(router *gin.Engine) {
	log.Println("📦 Using embedded web assets")

	tmpl, err := web.ParseTemplates(web.Embedded())
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}
	router.SetHTMLTemplate(tmpl)

	staticFS, err := web.Static(web.Embedded())
	if err != nil {
		log.Fatalf("Failed to get static subdirectory: %v", err)
	}
	router.StaticFS("/static", http.FS(staticFS))

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.Redirect(http.StatusFound, "/")
	})
}
