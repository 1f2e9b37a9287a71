package outline

import "strings"

// The recognized DSL surface is data, not behavior: these tables can grow
// (via Registry.AddCallbacks and friends) without touching the engine.

// modelCallbacks registers ActiveRecord persistence hooks.
var modelCallbacks = []string{
	"before_validation",
	"after_validation",
	"before_save",
	"around_save",
	"after_save",
	"before_create",
	"around_create",
	"after_create",
	"before_update",
	"around_update",
	"after_update",
	"before_destroy",
	"around_destroy",
	"after_destroy",
	"after_commit",
	"after_rollback",
	"after_initialize",
	"after_find",
	"after_touch",
}

// controllerCallbacks registers ActionController action hooks, including
// the prepend/append/skip variants.
var controllerCallbacks = []string{
	"before_action",
	"around_action",
	"after_action",
	"prepend_before_action",
	"prepend_around_action",
	"prepend_after_action",
	"append_before_action",
	"append_around_action",
	"append_after_action",
	"skip_before_action",
	"skip_around_action",
	"skip_after_action",
}

// jobCallbacks registers ActiveJob enqueue/perform hooks.
var jobCallbacks = []string{
	"before_enqueue",
	"around_enqueue",
	"after_enqueue",
	"before_perform",
	"around_perform",
	"after_perform",
}

// testAliases are the method names that declare a test case.
var testAliases = []string{"test", "it"}

// accessorMacros declare attribute readers/writers.
var accessorMacros = []string{"attr_reader", "attr_writer", "attr_accessor"}

// defaultTestSuffixes gate test-declaration recognition on the enclosing
// class's declared superclass name.
var defaultTestSuffixes = []string{"TestCase"}

// Registry holds the DSL call shapes the engine recognizes.
type Registry struct {
	callbacks    map[string]struct{}
	tests        map[string]struct{}
	accessors    map[string]struct{}
	testSuffixes []string
}

// NewRegistry returns a registry preloaded with the built-in Rails and
// Minitest tables.
func NewRegistry() *Registry {
	r := &Registry{
		callbacks:    make(map[string]struct{}),
		tests:        make(map[string]struct{}),
		accessors:    make(map[string]struct{}),
		testSuffixes: append([]string(nil), defaultTestSuffixes...),
	}
	r.AddCallbacks(modelCallbacks...)
	r.AddCallbacks(controllerCallbacks...)
	r.AddCallbacks(jobCallbacks...)
	for _, name := range testAliases {
		r.tests[name] = struct{}{}
	}
	for _, name := range accessorMacros {
		r.accessors[name] = struct{}{}
	}
	return r
}

// AddCallbacks registers additional lifecycle-callback macro names.
func (r *Registry) AddCallbacks(names ...string) {
	for _, name := range names {
		if name != "" {
			r.callbacks[name] = struct{}{}
		}
	}
}

// SetTestSuffixes replaces the superclass suffixes that mark a class as a
// test case. An empty list restores the default.
func (r *Registry) SetTestSuffixes(suffixes []string) {
	if len(suffixes) == 0 {
		r.testSuffixes = append([]string(nil), defaultTestSuffixes...)
		return
	}
	r.testSuffixes = append([]string(nil), suffixes...)
}

func (r *Registry) isCallback(name string) bool {
	_, ok := r.callbacks[name]
	return ok
}

func (r *Registry) isTestAlias(name string) bool {
	_, ok := r.tests[name]
	return ok
}

func (r *Registry) isAccessor(name string) bool {
	_, ok := r.accessors[name]
	return ok
}

// isTestBase checks the declared superclass name only. A class whose
// superclass is itself a TestCase subclass is not resolved; the check is
// deliberately local and syntactic.
func (r *Registry) isTestBase(superclass string) bool {
	if superclass == "" {
		return false
	}
	for _, suffix := range r.testSuffixes {
		if strings.HasSuffix(superclass, suffix) {
			return true
		}
	}
	return false
}
