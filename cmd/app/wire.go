//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/fourp/smartchat/internal/bootstrap"
	"github.com/fourp/smartchat/internal/domain/chat"
	"github.com/fourp/smartchat/internal/infra/config"
	"github.com/fourp/smartchat/internal/infra/llm/chatgpt"
	httpiface "github.com/fourp/smartchat/internal/interface/http"
	"github.com/fourp/smartchat/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChatConfig,
		provideLLMClient,
		provideRetriever,
		provideAnswerCache,
		chat.NewService,
		wire.Bind(new(chat.ChatClient), new(*chatgpt.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
