package authtest

import (
	"context"
	"sync"
)

// Navigation is one redirect a client asked for.
type Navigation struct {
	Path    string
	Replace bool
}

// NavigationRecorder is a client.Navigator that remembers every redirect.
type NavigationRecorder struct {
	mu   sync.Mutex
	navs []Navigation
}

func (n *NavigationRecorder) Navigate(_ context.Context, path string) {
	n.add(Navigation{Path: path})
}

func (n *NavigationRecorder) Replace(_ context.Context, path string) {
	n.add(Navigation{Path: path, Replace: true})
}

func (n *NavigationRecorder) add(nav Navigation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.navs = append(n.navs, nav)
}

// Navigations returns the redirects in the order they happened.
func (n *NavigationRecorder) Navigations() []Navigation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Navigation(nil), n.navs...)
}
