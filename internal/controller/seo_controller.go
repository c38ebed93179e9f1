package controller

import (
	"anre_quiz_backend/internal/service"
	"anre_quiz_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SEOController struct {
	SEO *service.SEOService
}

func NewSEOController(seo *service.SEOService) *SEOController {
	return &SEOController{SEO: seo}
}

// @Summary XML sitemap over the public learn pages
// @Tags seo
// @Produce xml
// @Success 200 {string} string
// @Router /sitemap.xml [get]
func (c *SEOController) Sitemap(ctx *gin.Context) {
	body, err := c.SEO.Sitemap()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

// @Summary robots.txt pointing crawlers at the sitemap
// @Tags seo
// @Produce plain
// @Success 200 {string} string
// @Router /robots.txt [get]
func (c *SEOController) Robots(ctx *gin.Context) {
	ctx.String(http.StatusOK, c.SEO.RobotsTxt())
}
