package controller

import (
	"senior_living_backend/internal/config"
	"senior_living_backend/internal/service"
	"senior_living_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LandingPageController struct {
	LandingPageService *service.LandingPageService
	Site               config.SiteConfig
}

func NewLandingPageController(landingPageService *service.LandingPageService, site config.SiteConfig) *LandingPageController {
	return &LandingPageController{LandingPageService: landingPageService, Site: site}
}

// @Summary 动态落地页
// @Description 按城市、护理类型和社区替换模板占位符
// @Tags 落地页
// @Produce json
// @Param slug path string true "落地页 slug"
// @Param city query string false "城市"
// @Param state query string false "州"
// @Param careType query string false "护理类型 slug"
// @Param community query string false "社区 slug"
// @Success 200 {object} util.Response
// @Router /api/landing-pages/{slug} [get]
func (c *LandingPageController) GetLandingPage(ctx *gin.Context) {
	var params service.LandingPageParams
	if err := ctx.ShouldBindQuery(&params); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	page, err := c.LandingPageService.Resolve(ctx.Request.Context(), ctx.Param("slug"), params)
	if err != nil {
		respondError(ctx, err, c.Site)
		return
	}
	util.Success(ctx, page)
}
