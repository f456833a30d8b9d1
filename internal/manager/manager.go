// Package manager loads psychic concepts from a configuration source and
// owns the instances spawned from them.
package manager

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/psychics/internal/concepts/ability"
	"github.com/KirkDiggler/psychics/internal/concepts/psychic"
	"github.com/KirkDiggler/psychics/internal/config"
	"github.com/KirkDiggler/psychics/internal/errors"
	"github.com/KirkDiggler/psychics/internal/pkg/clock"
	"github.com/KirkDiggler/psychics/internal/pkg/idgen"
	conceptconfig "github.com/KirkDiggler/psychics/internal/repositories/concept_config"
)

// Lifecycle event types published on the event bus
const (
	EventConceptRegistered = "psychics.concept.registered"
	EventInstanceCreated   = "psychics.instance.created"
	EventInstanceRemoved   = "psychics.instance.removed"
)

type abilityBinding struct {
	section *config.Section
	concept *ability.Concept
}

type registration struct {
	concept   *psychic.Concept
	section   *config.Section
	abilities []abilityBinding
}

// InstanceRecord is a registered instance and when it was created
type InstanceRecord struct {
	Instance  *psychic.Instance
	CreatedAt time.Time
}

// Manager owns loaded concepts and live instances
type Manager struct {
	plugin           psychic.Plugin
	source           conceptconfig.Repository
	abilities        *ability.Registry
	eventBus         events.EventBus
	idGen            idgen.Generator
	clock            clock.Clock
	settings         psychic.Settings
	fetchConcurrency int

	// lifecycle is held for reading by Spawn and for writing by Close
	lifecycle sync.RWMutex

	mu        sync.RWMutex
	concepts  map[string]*registration
	instances map[string]*InstanceRecord
	closed    bool
}

var _ psychic.Manager = (*Manager)(nil)

// New creates a Manager with no concepts loaded
func New(cfg *Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	settings := cfg.Settings
	if settings.MaxHealth == 0 {
		settings = psychic.DefaultSettings()
	}

	fetchConcurrency := cfg.FetchConcurrency
	if fetchConcurrency == 0 {
		fetchConcurrency = DefaultFetchConcurrency
	}

	return &Manager{
		plugin:           cfg.Plugin,
		source:           cfg.Source,
		abilities:        cfg.Abilities,
		eventBus:         cfg.EventBus,
		idGen:            cfg.IDGenerator,
		clock:            cfg.Clock,
		settings:         settings,
		fetchConcurrency: fetchConcurrency,
		concepts:         make(map[string]*registration),
		instances:        make(map[string]*InstanceRecord),
	}, nil
}

// Plugin returns the plugin handed to new instances
func (m *Manager) Plugin() psychic.Plugin {
	return m.plugin
}

// Settings returns the engine settings concepts are bound with
func (m *Manager) Settings() psychic.Settings {
	return m.settings
}

// GenerateInstanceID returns a fresh instance ID
func (m *Manager) GenerateInstanceID() string {
	return m.idGen.Generate()
}

// RegisterInstance records a new instance. Instances call it from their own
// initialization.
func (m *Manager) RegisterInstance(instance *psychic.Instance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errors.FailedPreconditionf("manager is closed, cannot register instance %s", instance.ID())
	}

	m.instances[instance.ID()] = &InstanceRecord{
		Instance:  instance,
		CreatedAt: m.clock.Now(),
	}
	return nil
}

// Rejection is a concept that failed to bind and was not registered
type Rejection struct {
	Concept string
	Err     error
}

// ModuleFailure is an ability whose initialization hook failed
type ModuleFailure struct {
	Concept string
	Ability string
	Err     error
}

// LoadOutput reports what Load registered
type LoadOutput struct {
	Loaded         []string
	Rejected       []Rejection
	ModuleFailures []ModuleFailure
}

type fetched struct {
	name string
	data []byte
	err  error
}

// Load reads every concept from the source and replaces the registered set.
// Documents are fetched concurrently; binding runs in name order. Concepts
// that fail binding are reported in Rejected and never registered. Only
// source failures other than NotFound abort the load.
func (m *Manager) Load(ctx context.Context) (*LoadOutput, error) {
	if m.isClosed() {
		return nil, errors.FailedPrecondition("manager is closed")
	}

	list, err := m.source.List(ctx, conceptconfig.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list concepts")
	}

	docs, err := m.fetch(ctx, list.Names)
	if err != nil {
		return nil, err
	}

	output := &LoadOutput{
		Loaded:         []string{},
		Rejected:       []Rejection{},
		ModuleFailures: []ModuleFailure{},
	}
	registered := make(map[string]*registration, len(docs))

	for _, doc := range docs {
		if doc.err != nil {
			output.Rejected = append(output.Rejected, Rejection{Concept: doc.name, Err: doc.err})
			slog.WarnContext(ctx, "Concept disappeared during load", "concept", doc.name, "error", doc.err)
			continue
		}

		reg, failures, err := m.bind(ctx, doc.name, doc.data)
		if err != nil {
			output.Rejected = append(output.Rejected, Rejection{Concept: doc.name, Err: err})
			slog.WarnContext(ctx, "Rejected psychic concept", "concept", doc.name, "error", err)
			continue
		}

		registered[doc.name] = reg
		output.Loaded = append(output.Loaded, doc.name)
		output.ModuleFailures = append(output.ModuleFailures, failures...)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		for _, reg := range registered {
			reg.concept.Retire()
		}
		return nil, errors.FailedPrecondition("manager is closed")
	}
	m.concepts = registered
	m.mu.Unlock()

	for _, name := range output.Loaded {
		m.publish(ctx, events.NewGameEvent(EventConceptRegistered, registered[name].concept, nil))
	}

	slog.InfoContext(ctx, "Loaded psychic concepts",
		"loaded", len(output.Loaded),
		"rejected", len(output.Rejected),
		"module_failures", len(output.ModuleFailures))

	return output, nil
}

func (m *Manager) fetch(ctx context.Context, names []string) ([]fetched, error) {
	docs := make([]fetched, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.fetchConcurrency)

	for i, name := range names {
		g.Go(func() error {
			out, err := m.source.Get(gctx, conceptconfig.GetInput{Name: name})
			if err != nil {
				if errors.IsNotFound(err) || errors.IsInvalidArgument(err) {
					docs[i] = fetched{name: name, err: err}
					return nil
				}
				return errors.Wrapf(err, "failed to fetch concept %s", name)
			}
			docs[i] = fetched{name: name, data: out.Data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(docs, func(a, b fetched) int {
		return strings.Compare(a.name, b.name)
	})
	return docs, nil
}

func (m *Manager) bind(ctx context.Context, name string, data []byte) (*registration, []ModuleFailure, error) {
	section, err := config.ParseYAML(data)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "concept %s", name).WithMeta("concept", name)
	}

	concept := psychic.NewConcept()
	if err := concept.Initialize(name, section, m.settings); err != nil {
		return nil, nil, err
	}
	if unknown := concept.BindResult().Unknown; len(unknown) > 0 {
		slog.WarnContext(ctx, "Unknown keys in psychic concept", "concept", name, "keys", unknown)
	}

	bindings, err := m.bindAbilities(name, section)
	if err != nil {
		return nil, nil, err
	}

	abilities := make([]psychic.AbilityConcept, len(bindings))
	for i, b := range bindings {
		abilities[i] = b.concept
	}

	var failures []ModuleFailure
	for _, result := range concept.InitializeModules(m, abilities) {
		if result.OK() {
			continue
		}
		failures = append(failures, ModuleFailure{
			Concept: name,
			Ability: result.Ability.Name(),
			Err:     result.Err,
		})
		slog.WarnContext(ctx, "Ability failed to initialize",
			"concept", name,
			"ability", result.Ability.Name(),
			"error", result.Err)
	}

	return &registration{concept: concept, section: section, abilities: bindings}, failures, nil
}

func (m *Manager) bindAbilities(name string, section *config.Section) ([]abilityBinding, error) {
	sections, err := section.Sections(psychic.KeyAbilities)
	if err != nil {
		return nil, errors.Wrapf(err, "concept %s", name).WithMeta("concept", name)
	}

	seen := make(map[string]struct{}, len(sections))
	bindings := make([]abilityBinding, 0, len(sections))
	for i, sub := range sections {
		concept, err := m.abilities.Create(sub)
		if err != nil {
			return nil, errors.Wrapf(err, "concept %s: abilities[%d]", name, i).WithMeta("concept", name)
		}
		if _, dup := seen[concept.Name()]; dup {
			return nil, errors.InvalidArgumentf("concept %s: duplicate ability %s", name, concept.Name()).
				WithMeta("concept", name)
		}
		seen[concept.Name()] = struct{}{}
		bindings = append(bindings, abilityBinding{section: sub, concept: concept})
	}
	return bindings, nil
}

// GetConcept returns a registered concept
func (m *Manager) GetConcept(name string) (*psychic.Concept, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reg, ok := m.concepts[name]
	if !ok {
		return nil, errors.NotFoundf("psychic concept %s not found", name)
	}
	return reg.concept, nil
}

// ListConcepts returns the registered concept names, sorted
func (m *Manager) ListConcepts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.concepts))
	for name := range m.concepts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Spawn creates an instance of the named concept
func (m *Manager) Spawn(ctx context.Context, name string) (*psychic.Instance, error) {
	m.lifecycle.RLock()
	defer m.lifecycle.RUnlock()

	if m.isClosed() {
		return nil, errors.FailedPrecondition("manager is closed")
	}

	concept, err := m.GetConcept(name)
	if err != nil {
		return nil, err
	}

	instance := concept.CreateInstance()
	slog.DebugContext(ctx, "Spawned psychic instance", "concept", name, "instance_id", instance.ID())
	m.publish(ctx, events.NewGameEvent(EventInstanceCreated, instance, concept))
	return instance, nil
}

// Remove unregisters an instance
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	record, ok := m.instances[id]
	if ok {
		delete(m.instances, id)
	}
	m.mu.Unlock()

	if !ok {
		return errors.NotFoundf("psychic instance %s not found", id)
	}

	m.publish(ctx, events.NewGameEvent(EventInstanceRemoved, record.Instance, record.Instance.Concept()))
	return nil
}

// ListInstances returns the registered instances, oldest first
func (m *Manager) ListInstances() []*InstanceRecord {
	m.mu.RLock()
	records := make([]*InstanceRecord, 0, len(m.instances))
	for _, r := range m.instances {
		records = append(records, r)
	}
	m.mu.RUnlock()

	slices.SortFunc(records, func(a, b *InstanceRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Instance.ID(), b.Instance.ID())
	})
	return records
}

// Tick advances every instance one game tick. It must be called from the
// host update loop.
func (m *Manager) Tick() {
	for _, record := range m.ListInstances() {
		record.Instance.Tick()
	}
}

// WriteDefaultsOutput lists the concepts whose documents were completed
type WriteDefaultsOutput struct {
	Updated []string
}

// WriteDefaults fills every absent key of the registered concepts and their
// abilities with its default and saves changed documents back to the source.
func (m *Manager) WriteDefaults(ctx context.Context) (*WriteDefaultsOutput, error) {
	m.mu.RLock()
	regs := make(map[string]*registration, len(m.concepts))
	for name, reg := range m.concepts {
		regs[name] = reg
	}
	m.mu.RUnlock()

	names := make([]string, 0, len(regs))
	for name := range regs {
		names = append(names, name)
	}
	slices.Sort(names)

	output := &WriteDefaultsOutput{Updated: []string{}}
	for _, name := range names {
		reg := regs[name]
		changed, err := reg.section.ApplyDefaults(reg.concept.BindResult())
		if err != nil {
			return output, errors.Wrapf(err, "failed to apply defaults to concept %s", name)
		}
		for _, b := range reg.abilities {
			abilityChanged, err := b.section.ApplyDefaults(b.concept.BindResult())
			if err != nil {
				return output, errors.Wrapf(err, "failed to apply defaults to ability %s/%s", name, b.concept.Name())
			}
			changed = changed || abilityChanged
		}
		if !changed {
			continue
		}

		data, err := reg.section.Encode()
		if err != nil {
			return output, errors.Wrapf(err, "failed to encode concept %s", name)
		}
		if _, err := m.source.Put(ctx, conceptconfig.PutInput{Name: name, Data: data}); err != nil {
			return output, errors.Wrapf(err, "failed to save concept %s", name)
		}

		output.Updated = append(output.Updated, name)
		slog.InfoContext(ctx, "Wrote defaults", "concept", name)
	}
	return output, nil
}

// Close removes every instance and retires every concept. The manager
// cannot be used afterwards, and concepts fetched from it panic on
// CreateInstance.
func (m *Manager) Close(ctx context.Context) {
	m.lifecycle.Lock()
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.lifecycle.Unlock()
		return
	}
	m.closed = true
	records := make([]*InstanceRecord, 0, len(m.instances))
	for _, r := range m.instances {
		records = append(records, r)
	}
	for _, reg := range m.concepts {
		reg.concept.Retire()
	}
	m.instances = make(map[string]*InstanceRecord)
	m.concepts = make(map[string]*registration)
	m.mu.Unlock()
	m.lifecycle.Unlock()

	slices.SortFunc(records, func(a, b *InstanceRecord) int {
		return strings.Compare(a.Instance.ID(), b.Instance.ID())
	})
	for _, r := range records {
		m.publish(ctx, events.NewGameEvent(EventInstanceRemoved, r.Instance, r.Instance.Concept()))
	}
}

func (m *Manager) isClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

func (m *Manager) publish(ctx context.Context, event events.Event) {
	if err := m.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish event", "type", event.Type(), "error", err)
	}
}
