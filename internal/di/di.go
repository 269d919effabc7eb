// Package di provides a minimal service registry with typed tokens for
// wiring bounded-context modules together.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry is the read side of the container.
type ServiceRegistry interface {
	// Get returns the service registered under name, resolving lazy
	// factories on first access. It panics if the name is unknown.
	Get(name string) any
}

// Container registers services by name. Registration happens during module
// setup; resolution may happen from any goroutine afterwards.
type Container interface {
	ServiceRegistry
	Register(name string, service any)
	RegisterFactory(name string, factory func(ServiceRegistry) any)
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{
		services:  make(map[string]any),
		factories: make(map[string]func(ServiceRegistry) any),
	}
}

type container struct {
	mu        sync.RWMutex
	services  map[string]any
	factories map[string]func(ServiceRegistry) any
}

func (c *container) Register(name string, service any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = factory
}

func (c *container) Get(name string) any {
	c.mu.RLock()
	svc, ok := c.services[name]
	c.mu.RUnlock()
	if ok {
		return svc
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check: another goroutine may have resolved the factory already.
	if svc, ok := c.services[name]; ok {
		return svc
	}
	factory, ok := c.factories[name]
	if !ok {
		panic(fmt.Sprintf("di: service %q not registered", name))
	}
	svc = factory(c)
	c.services[name] = svc
	return svc
}

// Token is a typed handle to a registered service.
type Token[T any] struct {
	name string
}

// NewToken creates a typed token under the given unique name.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// Name returns the registry key for the token.
func (t Token[T]) Name() string { return t.name }

// RegisterToken registers a lazily-constructed service under a typed token.
func RegisterToken[T any](c Container, token Token[T], factory func(ServiceRegistry) T) {
	c.RegisterFactory(token.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken resolves the service for a typed token.
func GetToken[T any](sr ServiceRegistry, token Token[T]) T {
	return sr.Get(token.name).(T)
}
