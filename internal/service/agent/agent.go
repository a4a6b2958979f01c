package agent

import (
	"context"
	"fmt"

	"github.com/sandevgo/helpbuddy/internal/config"
	"github.com/sandevgo/helpbuddy/internal/core"
	"github.com/sandevgo/helpbuddy/internal/service/memory"
	"github.com/sandevgo/helpbuddy/pkg/log"
)

// ContextRetriever assembles the retrieved-passage block for a query.
type ContextRetriever interface {
	GetContext(ctx context.Context, query string, maxChunks int) string
}

// ScopeClassifier decides corpus membership and phrases refusals.
type ScopeClassifier interface {
	IsInScope(ctx context.Context, query string) (bool, string)
	RefusalMessage(originalQuery string) string
}

// ImageDescriber turns an attached image into text usable in a query.
type ImageDescriber interface {
	Describe(ctx context.Context, imageData, hintQuery string) (string, bool)
}

// Agent is the query router. Per request it picks exactly one path, in
// precedence order: history question, image query, follow-up, then the
// normal retrieve-and-generate pipeline. It holds no per-conversation
// state itself; memory is passed in by the owning session.
type Agent struct {
	completer core.Completer
	retriever ContextRetriever
	scope     ScopeClassifier
	vision    ImageDescriber
	memCfg    *config.MemoryConfig
	maxChunks int
}

func NewAgent(
	completer core.Completer,
	retriever ContextRetriever,
	scope ScopeClassifier,
	vision ImageDescriber,
	memCfg *config.MemoryConfig,
	ragCfg *config.RAGConfig,
) *Agent {
	return &Agent{
		completer: completer,
		retriever: retriever,
		scope:     scope,
		vision:    vision,
		memCfg:    memCfg,
		maxChunks: ragCfg.MaxChunks,
	}
}

// ProcessQuery runs one request through the routing state machine. It
// never returns an error: every failure inside the pipeline degrades to
// a safe default, and anything unexpected is converted to the apology
// response at this boundary.
func (a *Agent) ProcessQuery(ctx context.Context, mem *memory.Manager, req core.QueryRequest) (result core.Result) {
	logger := log.FromCtx(ctx)

	meta := core.Metadata{
		core.MetaKeyHasImage:         core.MetaBool(req.HasImage()),
		core.MetaKeyContextRetrieved: core.MetaBool(false),
		core.MetaKeyScopeChecked:     core.MetaBool(false),
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("query", req.Query).Msg("query pipeline panicked")
			meta[core.MetaKeyError] = core.MetaString(fmt.Sprint(r))
			result = core.Result{Response: apologyResponse, Metadata: meta}
		}
	}()

	logger.Info().Str("query", req.Query).Bool("has_image", req.HasImage()).Msg("processing query")

	// 1. Questions about the conversation itself are answered from
	// memory alone: no scope check, no retrieval, no memory write.
	if isHistoryQuestion(req.Query) {
		logger.Debug().Msg("routing to history question")
		meta[core.MetaKeyRoute] = core.MetaString(string(core.RouteHistory))
		return core.Result{Response: mem.HistoryInfo(req.Query), Metadata: meta}
	}

	// 2. An attached image wins over follow-up heuristics: "what is
	// it?" next to a photo is a question about the photo.
	if !req.HasImage() && isFollowUp(req.Query) && !mem.IsEmpty() {
		if resp, ok := a.answerFollowUp(ctx, mem, req.Query, meta); ok {
			return core.Result{Response: resp, Metadata: meta}
		}
		// Heuristics matched but there was no usable context; treat as
		// a normal question.
	}

	return a.runPipeline(ctx, mem, req, meta)
}

// answerFollowUp builds the reply from conversation context only. The
// second return is false when recent context is trivial, sending the
// query down the normal pipeline instead.
func (a *Agent) answerFollowUp(ctx context.Context, mem *memory.Manager, query string, meta core.Metadata) (string, bool) {
	logger := log.FromCtx(ctx)

	recentContext := mem.RecentContext(5)
	relatedContext := mem.RelatedContext(query)
	if recentContext == memory.NoHistoryLiteral {
		return "", false
	}

	logger.Debug().Msg("routing to follow-up")
	meta[core.MetaKeyRoute] = core.MetaString(string(core.RouteFollowUp))

	response, err := a.completer.Complete(ctx, followUpPrompt(recentContext, relatedContext, query))
	if err != nil {
		logger.Warn().Err(err).Msg("follow-up generation failed")
		meta[core.MetaKeyError] = core.MetaString(err.Error())
		response = followUpFallback
	}

	if a.memCfg.PersistFollowUps {
		mem.Add(query, response, meta)
	}
	return response, true
}

// runPipeline is the full path: processed-query assembly, scope check,
// retrieval, generation, memory write.
func (a *Agent) runPipeline(ctx context.Context, mem *memory.Manager, req core.QueryRequest, meta core.Metadata) core.Result {
	logger := log.FromCtx(ctx)

	route := core.RouteNormal
	processedQuery := req.Query
	if req.HasImage() {
		route = core.RouteImage
		if description, ok := a.vision.Describe(ctx, req.ImageData, req.Query); ok {
			processedQuery = fmt.Sprintf("%s - Image shows: %s", req.Query, description)
			logger.Debug().Msg("image description merged into query")
		}
	}

	inScope, reason := a.scope.IsInScope(ctx, processedQuery)
	meta[core.MetaKeyScopeChecked] = core.MetaBool(true)
	meta[core.MetaKeyScopeReason] = core.MetaString(reason)
	if !inScope {
		logger.Info().Str("reason", reason).Msg("query out of scope")
		meta[core.MetaKeyRoute] = core.MetaString(string(core.RouteOutOfScope))
		return core.Result{Response: a.scope.RefusalMessage(req.Query), Metadata: meta}
	}

	contextBlock := a.retriever.GetContext(ctx, processedQuery, a.maxChunks)
	meta[core.MetaKeyContextRetrieved] = core.MetaBool(true)
	meta[core.MetaKeyRoute] = core.MetaString(string(route))

	recentContext := mem.RecentContext(5)
	relatedContext := mem.RelatedContext(req.Query)

	var prompt string
	if req.HasImage() {
		prompt = imageAnswerPrompt(contextBlock, recentContext, relatedContext, req.Query, processedQuery)
	} else {
		prompt = answerPrompt(contextBlock, recentContext, relatedContext, req.Query)
	}

	response, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		logger.Error().Err(err).Msg("answer generation failed")
		meta[core.MetaKeyError] = core.MetaString(err.Error())
		response = apologyResponse
	}

	mem.Add(req.Query, response, meta)
	return core.Result{Response: response, Metadata: meta}
}
