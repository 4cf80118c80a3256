package controller

import (
	"senior_living_backend/internal/config"
	"senior_living_backend/internal/model"
	"senior_living_backend/internal/quiz"
	"senior_living_backend/internal/service"
	"senior_living_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
	Site        config.SiteConfig
}

func NewQuizController(quizService *service.QuizService, site config.SiteConfig) *QuizController {
	return &QuizController{QuizService: quizService, Site: site}
}

type ScoreRequest struct {
	Answers []model.SubmittedAnswer `json:"answers"`
}

// @Summary 获取测评定义
// @Description 按 slug 获取测评问题、选项与结果区间
// @Tags 测评
// @Produce json
// @Param slug path string true "测评 slug"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{slug} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	def, err := c.QuizService.GetQuiz(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err, c.Site)
		return
	}
	util.Success(ctx, def)
}

// @Summary 测评评分预览
// @Description 提交完整答案列表，返回得分、结果分类与推荐社区，不保存
// @Tags 测评
// @Accept json
// @Produce json
// @Param slug path string true "测评 slug"
// @Param body body ScoreRequest true "答案列表"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{slug}/score [post]
func (c *QuizController) Score(ctx *gin.Context) {
	var req ScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.QuizService.Preview(ctx.Request.Context(), ctx.Param("slug"), req.Answers)
	if err != nil {
		respondError(ctx, err, c.Site)
		return
	}
	util.Success(ctx, out)
}

// @Summary 开始测评
// @Description 创建测评会话，UTM 参数可通过查询字符串或请求体传入
// @Tags 测评
// @Accept json
// @Produce json
// @Param slug path string true "测评 slug"
// @Success 201 {object} util.Response
// @Router /api/quizzes/{slug}/sessions [post]
func (c *QuizController) StartSession(ctx *gin.Context) {
	var attribution quiz.Attribution
	if err := ctx.ShouldBindQuery(&attribution); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&attribution); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}
	if attribution.Referrer == "" {
		attribution.Referrer = ctx.Request.Referer()
	}

	view, err := c.QuizService.StartSession(ctx.Request.Context(), ctx.Param("slug"), attribution)
	if err != nil {
		respondError(ctx, err, c.Site)
		return
	}
	util.Created(ctx, view)
}

// @Summary 获取测评会话
// @Tags 测评
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/quiz-sessions/{id} [get]
func (c *QuizController) GetSession(ctx *gin.Context) {
	view, err := c.QuizService.GetSession(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, c.Site)
		return
	}
	util.Success(ctx, view)
}

// @Summary 记录答案
// @Description 同一问题再次作答会覆盖之前的答案
// @Tags 测评
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param body body model.SubmittedAnswer true "答案"
// @Success 200 {object} util.Response
// @Router /api/quiz-sessions/{id}/answers [put]
func (c *QuizController) RecordAnswer(ctx *gin.Context) {
	var answer model.SubmittedAnswer
	if err := ctx.ShouldBindJSON(&answer); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.RecordAnswer(ctx.Request.Context(), ctx.Param("id"), answer)
	if err != nil {
		respondError(ctx, err, c.Site)
		return
	}
	util.Success(ctx, view)
}

// @Summary 下一题
// @Tags 测评
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/quiz-sessions/{id}/next [post]
func (c *QuizController) Next(ctx *gin.Context) {
	view, err := c.QuizService.Next(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, c.Site)
		return
	}
	util.Success(ctx, view)
}

// @Summary 上一题
// @Tags 测评
// @Produce json
// @Param id path string true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/quiz-sessions/{id}/back [post]
func (c *QuizController) Back(ctx *gin.Context) {
	view, err := c.QuizService.Back(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, c.Site)
		return
	}
	util.Success(ctx, view)
}

// @Summary 提交测评
// @Description 提交联系方式并保存测评结果；失败时会话保留，可重试
// @Tags 测评
// @Accept json
// @Produce json
// @Param id path string true "会话ID"
// @Param body body service.SubmitRequest true "联系方式"
// @Success 200 {object} util.Response
// @Router /api/quiz-sessions/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.QuizService.Submit(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err, c.Site)
		return
	}
	util.Success(ctx, res)
}
