package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/match"
	"github.com/mcoot/tictactoe-go/internal/services/outcome"
	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/storage/memory"
	"github.com/mcoot/tictactoe-go/internal/testutil"
)

type ManagerSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	manager *session.Manager
	ctx     context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()
	botService := bot.NewService(bot.Strategies(s.random), model.BotStrategyLine, logger)
	s.manager = session.NewManager(s.storage, outcome.New(), botService, s.clock, s.random, match.DefaultConfig(), logger)
	s.ctx = context.Background()
}

func (s *ManagerSuite) TestCreateRegistersAndStores() {
	s.random.QueueString("abcd2345")

	sess := s.manager.Create(s.ctx)

	s.Equal(model.MatchID("abcd2345"), sess.ID())
	s.Equal(1, s.manager.Count())

	stored, err := s.storage.GetMatch(s.ctx, "abcd2345")
	s.Require().NoError(err)
	s.Equal(model.PhaseAwaitingMode, stored.Phase)
}

func (s *ManagerSuite) TestCreateRetriesOnCollision() {
	s.random.QueueString("aaaaaaaa", "aaaaaaaa", "bbbbbbbb")

	first := s.manager.Create(s.ctx)
	second := s.manager.Create(s.ctx)

	s.Equal(model.MatchID("aaaaaaaa"), first.ID())
	s.Equal(model.MatchID("bbbbbbbb"), second.ID())
	s.Equal(2, s.manager.Count())
}

func (s *ManagerSuite) TestGet() {
	s.random.QueueString("abcd2345")
	created := s.manager.Create(s.ctx)

	sess, err := s.manager.Get("abcd2345")
	s.Require().NoError(err)
	s.Same(created, sess)
}

func (s *ManagerSuite) TestGetUnknown() {
	_, err := s.manager.Get("missing")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *ManagerSuite) TestAttachReplaysAndForwards() {
	s.random.QueueString("abcd2345")
	sess := s.manager.Create(s.ctx)
	viewer := mocks.NewMockPresenter()

	sess.Attach("viewer-1", viewer)
	s.Equal(match.StatusChooseMode, viewer.LastStatus())

	s.Require().True(sess.Controller.ChooseMode(s.ctx, model.ModeTwoHuman))
	s.Equal(match.StatusChooseSymbol, viewer.LastStatus())

	sess.Detach("viewer-1")
	viewer.Reset()
	s.Require().True(sess.Controller.ChooseSymbol(s.ctx, model.SymbolX))
	s.Empty(viewer.Events())
}

func (s *ManagerSuite) TestRemoveStopsMatch() {
	s.random.QueueString("abcd2345")
	sess := s.manager.Create(s.ctx)
	s.Require().True(sess.Controller.ChooseMode(s.ctx, model.ModeOneHuman))
	s.Require().True(sess.Controller.ChooseSymbol(s.ctx, model.SymbolX))
	s.Require().True(sess.Controller.ApplyHumanMove(s.ctx, 4))

	s.Require().NoError(s.manager.Remove(s.ctx, "abcd2345"))

	s.Equal(0, s.manager.Count())
	s.Empty(s.clock.PendingTimers())
	_, err := s.storage.GetMatch(s.ctx, "abcd2345")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

// failingDeleteStorage stores matches but cannot delete them
type failingDeleteStorage struct {
	*memory.Storage
}

func (failingDeleteStorage) DeleteMatch(context.Context, model.MatchID) error {
	return errors.New("disk gone")
}

func (s *ManagerSuite) TestRemoveSucceedsWhenSnapshotDeleteFails() {
	logger, buf := testutil.CaptureLogger()
	botService := bot.NewService(bot.Strategies(s.random), model.BotStrategyLine, logger)
	manager := session.NewManager(failingDeleteStorage{s.storage}, outcome.New(), botService, s.clock, s.random, match.DefaultConfig(), logger)
	s.random.QueueString("abcd2345")
	manager.Create(s.ctx)

	s.Require().NoError(manager.Remove(s.ctx, "abcd2345"))

	s.Equal(0, manager.Count())
	_, err := manager.Get("abcd2345")
	s.ErrorIs(err, model.ErrMatchNotFound)
	s.Contains(buf.String(), "failed to delete match snapshot")
	s.Contains(buf.String(), `"error":"disk gone"`)
	s.ErrorIs(manager.Remove(s.ctx, "abcd2345"), model.ErrMatchNotFound)
}

func (s *ManagerSuite) TestRemoveUnknown() {
	err := s.manager.Remove(s.ctx, "missing")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *ManagerSuite) TestCloseStopsEverything() {
	s.random.QueueString("aaaaaaaa", "bbbbbbbb")
	s.manager.Create(s.ctx)
	s.manager.Create(s.ctx)

	s.manager.Close()

	s.Equal(0, s.manager.Count())
}
