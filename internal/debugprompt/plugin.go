package debugprompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"stp/internal/events"
	"stp/internal/tmpfile"
)

// ExtraDetailPrefix marks the annotation the plugin attaches to failed
// scenario results.
const ExtraDetailPrefix = "AI Debug Prompt: "

// Plugin bridges the runner lifecycle to the prompt Builder: it listens
// for failed scenarios, builds a debug prompt for each one, persists it
// to a transient file and attaches the file's location to the result.
type Plugin struct {
	builder *Builder
	log     *zap.Logger

	// captured on ConfigLoadedEvent, read-only afterwards
	projectRoot string
	tmp         tmpfile.Creator
}

// NewPlugin creates a Plugin around the given Builder
func NewPlugin(builder *Builder, logger *zap.Logger) *Plugin {
	return &Plugin{builder: builder, log: logger}
}

// Subscribe registers the plugin's event handlers
func (p *Plugin) Subscribe(dispatcher *events.Dispatcher) {
	dispatcher.
		Listen(events.ConfigLoadedEvent{}, p.onConfigLoaded).
		Listen(events.ScenarioFailedEvent{}, p.onScenarioFailed)
}

// onConfigLoaded retains the project root and temp-file location for the run
func (p *Plugin) onConfigLoaded(ctx context.Context, event events.Event) error {
	cfg := event.(events.ConfigLoadedEvent).Config
	p.projectRoot = cfg.GetProjectRoot()
	p.tmp = tmpfile.NewDirCreator(cfg.GetTmpDir())
	return nil
}

// onScenarioFailed builds and stores a debug prompt for the failure
func (p *Plugin) onScenarioFailed(ctx context.Context, event events.Event) error {
	if p.projectRoot == "" || p.tmp == nil {
		return errors.New("debugprompt: scenario failed before configuration was loaded")
	}

	result := event.(events.ScenarioFailedEvent).Result
	prompt, err := p.builder.Build(result, p.projectRoot)
	if err != nil {
		return err
	}

	path, err := p.tmp.Create("prompt_", ".md")
	if err != nil {
		return fmt.Errorf("create prompt file: %w", err)
	}
	if err := os.WriteFile(path, []byte(prompt), 0644); err != nil {
		return fmt.Errorf("write prompt file: %w", err)
	}

	promptPath := path
	if rel, err := filepath.Rel(p.projectRoot, path); err == nil {
		promptPath = rel
	}
	result.AddExtraDetails(ExtraDetailPrefix + promptPath)

	p.log.Debug("debug prompt written",
		zap.String("scenario", result.Scenario.Subject),
		zap.String("path", promptPath),
	)
	return nil
}

// PromptPath extracts the prompt location a plugin attached to a result,
// or "" when none was attached.
func PromptPath(extraDetails []string) string {
	for _, detail := range extraDetails {
		if len(detail) > len(ExtraDetailPrefix) && detail[:len(ExtraDetailPrefix)] == ExtraDetailPrefix {
			return detail[len(ExtraDetailPrefix):]
		}
	}
	return ""
}
