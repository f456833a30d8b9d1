package psychic_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/psychics/internal/concepts/psychic"
	psychicmock "github.com/KirkDiggler/psychics/internal/concepts/psychic/mock"
	"github.com/KirkDiggler/psychics/internal/config"
)

type InstanceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	instance *psychic.Instance
}

func (s *InstanceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	manager := psychicmock.NewMockManager(s.ctrl)
	plugin := psychicmock.NewMockPlugin(s.ctrl)
	manager.EXPECT().Plugin().Return(plugin).AnyTimes()
	manager.EXPECT().GenerateInstanceID().Return("inst-1").AnyTimes()
	manager.EXPECT().RegisterInstance(gomock.Any()).AnyTimes()

	section, err := config.ParseYAML([]byte("mana: 10\nmana-regen: 4"))
	s.Require().NoError(err)

	concept := psychic.NewConcept()
	s.Require().NoError(concept.Initialize("mage", section, psychic.DefaultSettings()))
	concept.InitializeModules(manager, nil)
	s.instance = concept.CreateInstance()
}

func (s *InstanceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *InstanceTestSuite) TestStartsEmpty() {
	s.Assert().Zero(s.instance.Mana())
	s.Assert().Zero(s.instance.Ticks())
	s.Assert().Equal("inst-1", s.instance.GetID())
}

func (s *InstanceTestSuite) TestTickRegeneratesUpToMax() {
	s.instance.Tick()
	s.Assert().Equal(4.0, s.instance.Mana())

	s.instance.Tick()
	s.instance.Tick()
	s.Assert().Equal(10.0, s.instance.Mana())
	s.Assert().Equal(int64(3), s.instance.Ticks())
}

func (s *InstanceTestSuite) TestConsumeMana() {
	s.instance.Tick()
	s.instance.Tick()

	s.Assert().False(s.instance.ConsumeMana(9))
	s.Assert().False(s.instance.ConsumeMana(-1))
	s.Assert().True(s.instance.ConsumeMana(8))
	s.Assert().Zero(s.instance.Mana())
}

func TestInstanceSuite(t *testing.T) {
	suite.Run(t, new(InstanceTestSuite))
}
