package manager_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/psychics/internal/concepts/ability"
	"github.com/KirkDiggler/psychics/internal/concepts/psychic"
	"github.com/KirkDiggler/psychics/internal/config"
	"github.com/KirkDiggler/psychics/internal/entities"
	"github.com/KirkDiggler/psychics/internal/errors"
	"github.com/KirkDiggler/psychics/internal/manager"
	"github.com/KirkDiggler/psychics/internal/pkg/clock"
	"github.com/KirkDiggler/psychics/internal/pkg/idgen"
	conceptconfig "github.com/KirkDiggler/psychics/internal/repositories/concept_config"
	conceptconfigmock "github.com/KirkDiggler/psychics/internal/repositories/concept_config/mock"
	"github.com/KirkDiggler/psychics/internal/testutils"
)

type publishedEvent struct {
	Type   string
	Source string
}

// recordingEventBus satisfies events.EventBus and records what was published
type recordingEventBus struct {
	mu        sync.Mutex
	published []publishedEvent
}

func (b *recordingEventBus) Publish(_ context.Context, e events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	source := ""
	if e.Source() != nil {
		source = e.Source().GetID()
	}
	b.published = append(b.published, publishedEvent{Type: e.Type(), Source: source})
	return nil
}
func (b *recordingEventBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (b *recordingEventBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (b *recordingEventBus) Unsubscribe(_ string) error { return nil }
func (b *recordingEventBus) Clear(_ string)             {}
func (b *recordingEventBus) ClearAll()                  {}

func (b *recordingEventBus) ofType(eventType string) []publishedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []publishedEvent
	for _, e := range b.published {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type ManagerTestSuite struct {
	suite.Suite
	ctx     context.Context
	dir     string
	source  conceptconfig.Repository
	bus     *recordingEventBus
	clock   *clock.Fixed
	manager *manager.Manager
}

func (s *ManagerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.dir = testutils.WriteConceptDir(s.T(), nil)

	source, err := conceptconfig.NewFile(&conceptconfig.FileConfig{Dir: s.dir})
	s.Require().NoError(err)
	s.source = source

	s.bus = &recordingEventBus{}
	s.clock = clock.NewFixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	s.manager = s.newManager(s.source)
}

func (s *ManagerTestSuite) newManager(source conceptconfig.Repository) *manager.Manager {
	m, err := manager.New(&manager.Config{
		Plugin:      manager.NewPlugin("Psychics"),
		Source:      source,
		Abilities:   ability.NewRegistry(),
		EventBus:    s.bus,
		IDGenerator: idgen.NewSequential("psy"),
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	return m
}

func (s *ManagerTestSuite) TestNew_Validation() {
	_, err := manager.New(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = manager.New(&manager.Config{})
	s.Require().Error(err)
	fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	for _, field := range []string{"plugin", "source", "abilities", "event_bus", "id_generator", "clock"} {
		s.Assert().Contains(fields, field)
	}
}

func (s *ManagerTestSuite) TestNew_DefaultSettings() {
	s.Assert().Equal(psychic.DefaultSettings(), s.manager.Settings())
}

func (s *ManagerTestSuite) TestLoad() {
	out, err := s.manager.Load(s.ctx)

	s.Require().NoError(err)
	s.Assert().Equal([]string{"misfire", "pyromancer", "tank"}, out.Loaded)
	s.Require().Len(out.Rejected, 1)
	s.Assert().Equal("broken", out.Rejected[0].Concept)
	s.Assert().True(errors.IsInvalidArgument(out.Rejected[0].Err))

	s.Require().Len(out.ModuleFailures, 1)
	s.Assert().Equal("misfire", out.ModuleFailures[0].Concept)
	s.Assert().Equal("dud", out.ModuleFailures[0].Ability)
	s.Assert().True(errors.IsFailedPrecondition(out.ModuleFailures[0].Err))

	s.Assert().Equal([]string{"misfire", "pyromancer", "tank"}, s.manager.ListConcepts())
	s.Assert().Equal([]publishedEvent{
		{Type: manager.EventConceptRegistered, Source: "misfire"},
		{Type: manager.EventConceptRegistered, Source: "pyromancer"},
		{Type: manager.EventConceptRegistered, Source: "tank"},
	}, s.bus.ofType(manager.EventConceptRegistered))
}

func (s *ManagerTestSuite) TestLoad_BoundValues() {
	_, err := s.manager.Load(s.ctx)
	s.Require().NoError(err)

	tank, err := s.manager.GetConcept("tank")
	s.Require().NoError(err)
	s.Assert().Equal(2008.0, tank.HealthBonus())

	pyro, err := s.manager.GetConcept("pyromancer")
	s.Require().NoError(err)
	s.Assert().Equal(psychic.PhaseFullyBound, pyro.Phase())
	s.Assert().Equal(entities.BarColorRed, pyro.ManaColor())
	s.Assert().Same(s.manager, pyro.Manager())

	abilities := pyro.AbilityConcepts()
	s.Require().Len(abilities, 2)
	s.Assert().Equal("fireball", abilities[0].Name())
	s.Assert().Equal("ember", abilities[1].Name())

	_, err = s.manager.GetConcept("broken")
	s.Assert().True(errors.IsNotFound(err))
}

func (s *ManagerTestSuite) TestLoad_BookRendersAbilities() {
	_, err := s.manager.Load(s.ctx)
	s.Require().NoError(err)
	pyro, err := s.manager.GetConcept("pyromancer")
	s.Require().NoError(err)

	book := pyro.CreateTooltipBook(func(stat entities.Statistic) float64 {
		return stat.Evaluate(func(entities.Attribute) float64 { return 10 })
	})

	s.Assert().Equal("Psychics", book.Author)
	s.Require().Len(book.Pages, 1)
	s.Require().Len(book.Pages[0], 5)
	s.Assert().Equal("psychics supply fireball", book.Pages[0][2].Click.Command)
	s.Assert().Contains(book.Pages[0][2].Hover.Lines(), "Damage: 20.0 (2 attack-damage)")
	s.Assert().Equal("psychics supply ember", book.Pages[0][4].Click.Command)
}

func (s *ManagerTestSuite) TestLoad_AbilityErrorsRejectConcept() {
	dir := testutils.WriteConceptDir(s.T(), map[string]string{
		"laser":  "abilities:\n  - name: beam\n    type: laser\n",
		"twins":  "abilities:\n  - name: a\n  - name: a\n",
		"flat":   "abilities: 3\n",
		"broken": "mana: [1\n",
	})
	source, err := conceptconfig.NewFile(&conceptconfig.FileConfig{Dir: dir})
	s.Require().NoError(err)

	out, err := s.newManager(source).Load(s.ctx)

	s.Require().NoError(err)
	s.Assert().Empty(out.Loaded)
	s.Require().Len(out.Rejected, 4)
	for _, r := range out.Rejected {
		s.Assert().True(errors.IsInvalidArgument(r.Err), r.Concept)
	}
}

func (s *ManagerTestSuite) TestLoad_ReplacesConcepts() {
	_, err := s.manager.Load(s.ctx)
	s.Require().NoError(err)

	_, err = s.source.Delete(s.ctx, conceptconfig.DeleteInput{Name: "tank"})
	s.Require().NoError(err)

	out, err := s.manager.Load(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]string{"misfire", "pyromancer"}, out.Loaded)
	s.Assert().Equal([]string{"misfire", "pyromancer"}, s.manager.ListConcepts())
}

func (s *ManagerTestSuite) TestLoad_SourceFailures() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()
	source := conceptconfigmock.NewMockRepository(ctrl)
	m := s.newManager(source)

	s.Run("list failure aborts", func() {
		source.EXPECT().List(gomock.Any(), conceptconfig.ListInput{}).
			Return(nil, errors.Unavailablef("redis down"))

		_, err := m.Load(s.ctx)

		s.Require().Error(err)
		s.Assert().Equal(errors.CodeUnavailable, errors.GetCode(err))
	})

	s.Run("get failure aborts", func() {
		source.EXPECT().List(gomock.Any(), conceptconfig.ListInput{}).
			Return(&conceptconfig.ListOutput{Names: []string{"tank"}}, nil)
		source.EXPECT().Get(gomock.Any(), conceptconfig.GetInput{Name: "tank"}).
			Return(nil, errors.Unavailablef("redis down"))

		_, err := m.Load(s.ctx)

		s.Require().Error(err)
		s.Assert().Empty(m.ListConcepts())
	})

	s.Run("concept deleted mid load is rejected", func() {
		source.EXPECT().List(gomock.Any(), conceptconfig.ListInput{}).
			Return(&conceptconfig.ListOutput{Names: []string{"ghost", "tank"}}, nil)
		source.EXPECT().Get(gomock.Any(), conceptconfig.GetInput{Name: "ghost"}).
			Return(nil, errors.NotFound("concept ghost not found"))
		source.EXPECT().Get(gomock.Any(), conceptconfig.GetInput{Name: "tank"}).
			Return(&conceptconfig.GetOutput{Name: "tank", Data: []byte(testutils.TankYAML)}, nil)

		out, err := m.Load(s.ctx)

		s.Require().NoError(err)
		s.Assert().Equal([]string{"tank"}, out.Loaded)
		s.Require().Len(out.Rejected, 1)
		s.Assert().Equal("ghost", out.Rejected[0].Concept)
	})
}

func (s *ManagerTestSuite) TestSpawnAndRemove() {
	_, err := s.manager.Load(s.ctx)
	s.Require().NoError(err)

	first, err := s.manager.Spawn(s.ctx, "pyromancer")
	s.Require().NoError(err)
	s.clock.Advance(time.Second)
	second, err := s.manager.Spawn(s.ctx, "tank")
	s.Require().NoError(err)

	s.Assert().Equal("psy_1", first.ID())
	s.Assert().Equal("psy_2", second.ID())
	s.Assert().Equal("Psychics", first.Plugin().Name())

	records := s.manager.ListInstances()
	s.Require().Len(records, 2)
	s.Assert().Same(first, records[0].Instance)
	s.Assert().Equal(s.clock.Now().Add(-time.Second), records[0].CreatedAt)
	s.Assert().Same(second, records[1].Instance)
	s.Assert().Len(s.bus.ofType(manager.EventInstanceCreated), 2)

	s.Require().NoError(s.manager.Remove(s.ctx, first.ID()))
	s.Assert().Len(s.manager.ListInstances(), 1)
	s.Assert().Equal([]publishedEvent{{Type: manager.EventInstanceRemoved, Source: "psy_1"}},
		s.bus.ofType(manager.EventInstanceRemoved))

	err = s.manager.Remove(s.ctx, first.ID())
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.manager.Spawn(s.ctx, "broken")
	s.Assert().True(errors.IsNotFound(err))
}

func (s *ManagerTestSuite) TestTick() {
	_, err := s.manager.Load(s.ctx)
	s.Require().NoError(err)
	instance, err := s.manager.Spawn(s.ctx, "pyromancer")
	s.Require().NoError(err)

	for range 3 {
		s.manager.Tick()
	}

	s.Assert().InDelta(0.3, instance.Mana(), 1e-9)
	s.Assert().Equal(int64(3), instance.Ticks())
}

func (s *ManagerTestSuite) TestWriteDefaults() {
	_, err := s.manager.Load(s.ctx)
	s.Require().NoError(err)

	out, err := s.manager.WriteDefaults(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]string{"misfire", "pyromancer", "tank"}, out.Updated)

	got, err := s.source.Get(s.ctx, conceptconfig.GetInput{Name: "tank"})
	s.Require().NoError(err)
	section, err := config.ParseYAML(got.Data)
	s.Require().NoError(err)
	for _, key := range []string{psychic.KeyMana, psychic.KeyManaColor, psychic.KeyDescription, psychic.KeyDisplayName} {
		s.Assert().True(section.Has(key), key)
	}
	color, _ := section.Get(psychic.KeyManaColor)
	s.Assert().Equal("BLUE", color)

	got, err = s.source.Get(s.ctx, conceptconfig.GetInput{Name: "pyromancer"})
	s.Require().NoError(err)
	section, err = config.ParseYAML(got.Data)
	s.Require().NoError(err)
	abilities, err := section.Sections(psychic.KeyAbilities)
	s.Require().NoError(err)
	s.Require().Len(abilities, 2)
	s.Assert().True(abilities[1].Has(ability.KeyCooldownTicks))

	reloaded := s.newManager(s.source)
	_, err = reloaded.Load(s.ctx)
	s.Require().NoError(err)
	out, err = reloaded.WriteDefaults(s.ctx)
	s.Require().NoError(err)
	s.Assert().Empty(out.Updated)
}

func (s *ManagerTestSuite) TestClose() {
	_, err := s.manager.Load(s.ctx)
	s.Require().NoError(err)
	_, err = s.manager.Spawn(s.ctx, "tank")
	s.Require().NoError(err)
	tank, err := s.manager.GetConcept("tank")
	s.Require().NoError(err)

	detached := psychic.NewConcept()
	s.Require().NoError(detached.Initialize("detached", config.NewSection(nil), s.manager.Settings()))
	detached.InitializeModules(s.manager, nil)

	s.manager.Close(s.ctx)
	s.manager.Close(s.ctx)

	s.Assert().Empty(s.manager.ListConcepts())
	s.Assert().Empty(s.manager.ListInstances())
	s.Assert().Len(s.bus.ofType(manager.EventInstanceRemoved), 1)

	s.Run("concepts fetched before close are retired", func() {
		s.Assert().True(tank.Retired())
		s.Assert().Panics(func() { tank.CreateInstance() })
		s.Assert().Empty(s.manager.ListInstances())
	})

	s.Run("closed manager refuses registrations", func() {
		s.Assert().False(detached.Retired())
		s.Assert().Panics(func() { detached.CreateInstance() })
		s.Assert().Empty(s.manager.ListInstances())
	})

	_, err = s.manager.Load(s.ctx)
	s.Assert().True(errors.IsFailedPrecondition(err))
	_, err = s.manager.Spawn(s.ctx, "tank")
	s.Assert().True(errors.IsFailedPrecondition(err))
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}
