package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
)

const interpreterSystemPrompt = `You translate a werewolf player's message into exactly one game action. Reply with a single JSON object and nothing else:
{"kind": "<seer_inspect|wolf_target|witch_heal|witch_kill|witch_pass|none>", "target": "<player name or empty>"}
Use "none" when the message is chatter or does not clearly name one action. Never invent player names.`

const interpretTimeout = 15 * time.Second

// Interpreter maps free text from a player to one structured action. A nil
// action with a nil error means the text did not amount to a move; that is
// the normal outcome for table talk and for any interpreter trouble.
type Interpreter interface {
	Interpret(ctx context.Context, snap Snapshot, actorID, text string) (*Action, error)
}

type llmInterpreter struct {
	llm llms.Model
}

// initInterpreter builds the configured interpreter, or nil when free-text
// commands are disabled.
func initInterpreter(cfg AppConfig) Interpreter {
	llm, err := newLLM(cfg, cfg.InterpreterProvider, cfg.InterpreterModel)
	if err != nil {
		log.Printf("Interpreter: %v, free-text commands disabled", err)
		return nil
	}
	if llm == nil {
		log.Printf("Interpreter: no provider configured, free-text commands disabled")
		return nil
	}
	log.Printf("Interpreter: provider=%s model=%s", cfg.InterpreterProvider, cfg.InterpreterModel)
	return &llmInterpreter{llm: llm}
}

func (in *llmInterpreter) Interpret(ctx context.Context, snap Snapshot, actorID, text string) (*Action, error) {
	ctx, cancel := context.WithTimeout(ctx, interpretTimeout)
	defer cancel()

	var names []string
	for _, p := range snap.Players {
		if p.Alive {
			names = append(names, p.Name)
		}
	}
	prompt := fmt.Sprintf("Current phase: %s\nLiving players: %s\nPlayer message: %q",
		snap.Phase, strings.Join(names, ", "), text)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, interpreterSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := in.llm.GenerateContent(ctx, messages, llms.WithJSONMode())
	if err != nil {
		// Interpreter trouble never becomes a player-visible error.
		log.Printf("Interpreter: %v", err)
		return nil, nil
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}
	return parseInterpreterReply(snap, actorID, resp.Choices[0].Content), nil
}

// parseInterpreterReply turns the model's JSON into an action from the
// closed taxonomy, resolving the target name against the roster. Anything
// malformed or out of vocabulary is a no-op.
func parseInterpreterReply(snap Snapshot, actorID, reply string) *Action {
	reply = stripCodeFence(reply)

	var parsed struct {
		Kind   string `json:"kind"`
		Target string `json:"target"`
	}
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		log.Printf("Interpreter: unparseable reply %q", reply)
		return nil
	}

	kind := ActionKind(strings.TrimSpace(parsed.Kind))
	switch kind {
	case ActionWitchPass:
		return &Action{Kind: kind, ActorID: actorID}
	case ActionSeerInspect, ActionWolfTarget, ActionWitchHeal, ActionWitchKill:
	default:
		return nil
	}

	target := snap.findPlayerByName(strings.TrimSpace(parsed.Target))
	if target == nil {
		return nil
	}
	return &Action{Kind: kind, ActorID: actorID, TargetID: target.ID}
}

// stripCodeFence removes a ```json ... ``` wrapper some models insist on.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
