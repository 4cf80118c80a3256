package controller

import (
	"senior_living_backend/internal/config"
	"senior_living_backend/internal/service"
	"senior_living_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
	Site             config.SiteConfig
}

func NewCommunityController(communityService *service.CommunityService, site config.SiteConfig) *CommunityController {
	return &CommunityController{CommunityService: communityService, Site: site}
}

// @Summary 社区推荐
// @Description 按结果分类推荐最多三个社区
// @Tags 社区
// @Produce json
// @Param category query string false "结果分类"
// @Success 200 {object} util.Response
// @Router /api/communities/recommendations [get]
func (c *CommunityController) Recommendations(ctx *gin.Context) {
	rec, err := c.CommunityService.Recommend(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		respondError(ctx, err, c.Site)
		return
	}
	util.Success(ctx, rec)
}
