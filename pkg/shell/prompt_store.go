package shell

import "sync"

// DefaultPrompt is used when no template is configured.
const DefaultPrompt = "F<GREEN>crusty%{} $ "

// PromptStore holds the prompt template shared between the read loop,
// the prompt builtin and the config watcher.
type PromptStore struct {
	mu         sync.RWMutex
	template   string
	configured string
}

func NewPromptStore(template string) *PromptStore {
	return &PromptStore{template: template, configured: template}
}

func (p *PromptStore) Template() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.template
}

// Set replaces the current template until the next Configure or Reset.
func (p *PromptStore) Set(template string) {
	p.mu.Lock()
	p.template = template
	p.mu.Unlock()
}

// Configure replaces both the current and the configured template.
func (p *PromptStore) Configure(template string) {
	p.mu.Lock()
	p.template = template
	p.configured = template
	p.mu.Unlock()
}

// Reset restores the configured template.
func (p *PromptStore) Reset() {
	p.mu.Lock()
	p.template = p.configured
	p.mu.Unlock()
}
