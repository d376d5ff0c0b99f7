package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fourp/smartchat/internal/infra/llm/chatgpt"
	apperrors "github.com/fourp/smartchat/pkg/errors"
	"github.com/fourp/smartchat/pkg/metrics"
)

// Service routes a single conversational turn.
type Service interface {
	Ask(ctx context.Context, req Request) (Response, error)
}

type service struct {
	cfg       Config
	retriever Retriever
	cache     AnswerCache
	client    ChatClient
	logger    *slog.Logger
	composer  *promptComposer
}

// NewService wires up the chat domain.
func NewService(cfg Config, retriever Retriever, cache AnswerCache, client ChatClient, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		retriever: retriever,
		cache:     cache,
		client:    client,
		logger:    logger.With("component", "chat.service"),
		composer:  newPromptComposer(cfg.Persona, cfg.MaxPromptTokens),
	}
}

// Ask implements the routing order: control tokens first, then the estimate
// collection flow, then the schedule-call confirmation, then full retrieval.
func (s *service) Ask(ctx context.Context, req Request) (Response, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Response{}, apperrors.Wrap("invalid_input", "question cannot be empty", nil)
	}

	if branch, ok := cannedBranches[question]; ok {
		return Response{
			Answer:            shorten(branch.text, s.cfg.MaxResponseLen),
			ConversationID:    req.ConversationID,
			ConversationState: branch.nextState.Tag(),
			ActionType:        branch.action,
			NextStep:          branch.nextStep,
			IsEmergency:       branch.emergency,
			IsScheduling:      branch.nextStep == NextStepCalendly,
		}, nil
	}

	state := ParseState(req.ConversationState)

	switch state.Phase {
	case PhaseCollectingEstimate:
		if state.RemainingFollowups > 0 && isGenericWorkDescription(question) {
			return s.askEstimateFollowup(ctx, question, req.ConversationID, state)
		}
		return s.answerEstimateQuery(ctx, question, req.ConversationID)
	case PhaseAwaitingScheduleCall:
		switch classifyScheduleReply(question) {
		case sentimentPositive:
			return s.confirmScheduleCall(req.ConversationID), nil
		case sentimentNegative:
			return s.declineScheduleCall(req.ConversationID), nil
		}
		// Neither yes nor no: treat it as a fresh question.
	}

	return s.answerWithRetrieval(ctx, question, req.ConversationID)
}

// askEstimateFollowup generates one clarifying question and burns the
// remaining follow-up budget so the next turn always retrieves.
func (s *service) askEstimateFollowup(ctx context.Context, question, conversationID string, state State) (Response, error) {
	var usage metrics.TokenUsage
	prompt := fmt.Sprintf(
		"A customer asked an electrical contractor for an estimate and described the work only as %q. "+
			"Ask exactly one short, friendly clarifying question that would help price the job. "+
			"Do not quote a price.", question)

	followup, err := s.complete(ctx, []chatgpt.Message{
		{Role: "system", Content: s.cfg.Persona},
		{Role: "user", Content: prompt},
	}, &usage)
	if err != nil {
		return Response{}, apperrors.Wrap("llm_error", "follow-up generation failed", err)
	}

	next := State{Phase: PhaseCollectingEstimate, RemainingFollowups: state.RemainingFollowups - 1}
	return Response{
		Answer:            shorten(followup, s.cfg.MaxResponseLen),
		ConversationID:    conversationID,
		ConversationState: next.Tag(),
		ActionType:        ActionEstimateQuery,
		TokenUsage:        usageOrNil(usage),
	}, nil
}

// answerEstimateQuery retrieves matching estimate records and asks the
// caller whether to schedule a call. Empty retrieval is a sentinel message,
// not an error.
func (s *service) answerEstimateQuery(ctx context.Context, question, conversationID string) (Response, error) {
	var usage metrics.TokenUsage
	vector, err := s.embed(ctx, question, &usage)
	if err != nil {
		return Response{}, apperrors.Wrap("llm_error", "embedding failed", err)
	}

	estimates, err := s.retriever.SearchEstimates(ctx, vector, s.cfg.EstimateLimit)
	if err != nil {
		return Response{}, apperrors.Wrap("retrieval_error", "estimate lookup failed", err)
	}

	var answer string
	if len(estimates) > 0 {
		// Only the first match is shown to keep the reply concise.
		answer = "Here are estimated price ranges:\n\n" +
			estimates[0].Text + "\n\n" +
			"**⚠️ Prices vary based on your specific situation**\n\n" +
			"**Schedule a call for a personalized quote?**"
	} else {
		answer = estimateNoMatchText
	}

	next := State{Phase: PhaseAwaitingScheduleCall}
	return Response{
		Answer:            shorten(answer, s.cfg.MaxResponseLen),
		ConversationID:    conversationID,
		ConversationState: next.Tag(),
		ActionType:        ActionEstimateQuery,
		TokenUsage:        usageOrNil(usage),
	}, nil
}

func (s *service) confirmScheduleCall(conversationID string) Response {
	return Response{
		Answer:         shorten(scheduleCallText, s.cfg.MaxResponseLen),
		ConversationID: conversationID,
		ActionType:     ActionScheduleCall,
		NextStep:       NextStepCalendly,
		IsScheduling:   true,
	}
}

func (s *service) declineScheduleCall(conversationID string) Response {
	return Response{
		Answer:            shorten(scheduleDeclinedText, s.cfg.MaxResponseLen),
		ConversationID:    conversationID,
		ConversationState: State{Phase: PhaseNone}.Tag(),
		ActionType:        ActionScheduleDeclined,
	}
}

// answerWithRetrieval is the default path: embed, retrieve FAQs, classify
// intent, retrieve tagged features, compose, generate, shape.
func (s *service) answerWithRetrieval(ctx context.Context, question, conversationID string) (Response, error) {
	cacheKey := s.cfg.Tenant + ":" + normalizeQuestion(question)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			s.logger.Warn("answer cache lookup failed", "error", err)
		} else if ok {
			return Response{
				Question:       question,
				Answer:         cached.Answer,
				ConversationID: conversationID,
				ActionType:     ActionAnswer,
				IntentTag:      cached.IntentTag,
			}, nil
		}
	}

	var usage metrics.TokenUsage
	vector, err := s.embed(ctx, question, &usage)
	if err != nil {
		return Response{}, apperrors.Wrap("llm_error", "embedding failed", err)
	}

	faqs, err := s.retriever.SearchFAQs(ctx, vector, s.cfg.FAQLimit)
	if err != nil {
		return Response{}, apperrors.Wrap("retrieval_error", "faq lookup failed", err)
	}
	faqSnippets := snippetTexts(faqs)
	if len(faqSnippets) == 0 {
		faqSnippets = []string{faqNoMatchSentinel}
	}

	tag, err := s.classifyIntent(ctx, question, &usage)
	if err != nil {
		return Response{}, apperrors.Wrap("llm_error", "intent classification failed", err)
	}

	var featureSnippets []string
	if tag != "" {
		features, err := s.retriever.FeaturesByTag(ctx, string(tag), s.cfg.Tenant)
		if err != nil {
			return Response{}, apperrors.Wrap("retrieval_error", "feature lookup failed", err)
		}
		featureSnippets = snippetTexts(features)
	}

	prompt := s.composer.compose(question, faqSnippets, featureSnippets, tag)
	answer, err := s.complete(ctx, []chatgpt.Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: question},
	}, &usage)
	if err != nil {
		return Response{}, apperrors.Wrap("llm_error", "answer generation failed", err)
	}
	answer = shorten(answer, s.cfg.MaxResponseLen)

	if s.cache != nil {
		entry := CachedAnswer{Answer: answer, IntentTag: tag, CreatedAt: time.Now()}
		if err := s.cache.Set(ctx, cacheKey, entry, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("answer cache save failed", "error", err)
		}
	}

	return Response{
		Question:       question,
		Answer:         answer,
		ConversationID: conversationID,
		ActionType:     ActionAnswer,
		IntentTag:      tag,
		TokenUsage:     usageOrNil(usage),
	}, nil
}

func (s *service) embed(ctx context.Context, text string, usage *metrics.TokenUsage) ([]float32, error) {
	resp, err := s.client.CreateEmbedding(ctx, chatgpt.EmbeddingRequest{
		Model: s.cfg.EmbeddingModel,
		Input: text,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("embedding response empty")
	}
	usage.Add(metrics.TokenUsage{
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	})
	vector := make([]float32, len(resp.Data[0].Embedding))
	copy(vector, resp.Data[0].Embedding)
	return vector, nil
}

func (s *service) complete(ctx context.Context, messages []chatgpt.Message, usage *metrics.TokenUsage) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	usage.Add(metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	})
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errors.New("completion response empty")
	}
	return answer, nil
}

func snippetTexts(items []RetrievedItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Text) == "" {
			continue
		}
		out = append(out, item.Text)
	}
	return out
}

func usageOrNil(usage metrics.TokenUsage) *metrics.TokenUsage {
	if usage.IsZero() {
		return nil
	}
	return &usage
}
