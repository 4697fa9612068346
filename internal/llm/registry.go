package llm

import "fmt"

// ProviderFactory builds a ready-to-use Provider. Backends register
// themselves from an init func so the one named by AI_PROVIDER
// (currently only "gemini") can be selected at startup.
type ProviderFactory func() (Provider, error)

var providers = make(map[string]ProviderFactory)

// RegisterProvider makes a factory available under the given name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider instantiates the named backend, or errors if none registered it.
func NewProvider(name string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return factory()
}
