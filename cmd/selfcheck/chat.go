package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mentallify/assistant/internal/apiclient"
	"github.com/mentallify/assistant/internal/selfcheck"
	"github.com/mentallify/assistant/internal/symptom"
)

const replHelp = "Type a message, answer with yes/no, or use /start /finish /restart /quit."

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant and take the self-check",
		RunE:  runChat,
	}
	cmd.Flags().String("api", "", "Assistant API base URL (default ASSISTANT_API_BASE_URL)")
	cmd.Flags().Int("questions", 0, "Questions per self-check (default ASSISTANT_QUESTION_COUNT)")
	cmd.Flags().Bool("offline", false, "Use only built-in questions, scoring and replies")
	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)
	keywords := loadKeywords(cmd, cfg, logger)

	apiURL, _ := cmd.Flags().GetString("api")
	if apiURL == "" {
		apiURL = cfg.Assistant.APIBaseURL
	}
	count, _ := cmd.Flags().GetInt("questions")
	if count <= 0 {
		count = cfg.Assistant.QuestionCount
	}
	offline, _ := cmd.Flags().GetBool("offline")

	var (
		questions selfcheck.QuestionSource
		remote    selfcheck.RemoteScorer
		chat      selfcheck.ChatSource
	)
	if !offline {
		client := apiclient.New(apiclient.Config{BaseURL: apiURL, Timeout: cfg.Assistant.HTTPTimeout}, logger)
		questions, remote, chat = client, client, client
	}

	view := newTerminalView(cmd.OutOrStdout())
	ctrl := selfcheck.NewController(
		view,
		selfcheck.NewQuestionBank(questions, symptom.BuiltinQuestions(), logger),
		selfcheck.NewScorer(remote, symptom.DefaultConditions(), logger),
		chat,
		keywords,
		selfcheck.Options{QuestionCount: count, AutoStartDelay: cfg.Assistant.AutoStartDelay},
		logger,
	)
	defer ctrl.Close()

	view.Say(replHelp)
	return repl(cmd, ctrl, view)
}

// repl feeds stdin lines to the controller until EOF or /quit.
func repl(cmd *cobra.Command, ctrl *selfcheck.Controller, view *terminalView) error {
	ctx := cmd.Context()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		view.Prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		var err error
		switch strings.ToLower(line) {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/help":
			view.Say(replHelp)
		case "/start":
			err = ctrl.Start(ctx)
		case "/restart":
			err = ctrl.Restart(ctx)
		case "/finish":
			err = ctrl.Finish(ctx)
		case "/yes":
			err = ctrl.Answer(true)
		case "/no":
			err = ctrl.Answer(false)
		default:
			err = ctrl.HandleInput(ctx, line)
		}
		if err != nil && !rendered(err) {
			return fmt.Errorf("selfcheck: %w", err)
		}
	}
}

// rendered reports errors the controller has already shown to the user.
func rendered(err error) bool {
	return errors.Is(err, selfcheck.ErrInvalidAnswer) ||
		errors.Is(err, selfcheck.ErrNotActive) ||
		errors.Is(err, selfcheck.ErrEmptyQuestionBank)
}
