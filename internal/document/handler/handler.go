package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/docsign/internal/document/service"
)

const (
	msgSigned            = "Document signed successfully"
	msgSignatureRequired = "Signature is required"
	msgNotSignable       = "Document not found or already signed"
	msgNotFound          = "Document not found"
)

type createRequest struct {
	Content string `json:"content"`
}

type signRequest struct {
	Signature string `json:"signature"`
}

// RegisterDocumentRoutes mounts the document API under /api/documents.
func RegisterDocumentRoutes(r gin.IRouter, svc service.Service) {
	g := r.Group("/api/documents")

	g.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.List())
	})

	g.GET("/:id", func(c *gin.Context) {
		d, err := svc.Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
			return
		}
		c.JSON(http.StatusOK, d)
	})

	// blank or unparseable content is rejected with an empty 400
	g.POST("", func(c *gin.Context) {
		var req createRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		d, err := svc.Create(req.Content)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	g.PUT("/:id/sign", func(c *gin.Context) {
		var req signRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgSignatureRequired})
			return
		}
		err := svc.Sign(c.Param("id"), req.Signature)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": msgSigned})
		case errors.Is(err, service.ErrSignatureRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgSignatureRequired})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": msgNotSignable})
		}
	})
}
