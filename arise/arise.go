// Package arise implements the reward-resolution state machine of the
// tracker: quest and objective completion, experience scoring, achievement
// evaluation, the reward queue, loot containers with pity, day-boundary
// metrics and the shop. The package is a pure synchronous reducer over a
// single State document; the host owns the long-lived instance, serializes
// dispatch and persists snapshots.
package arise

import (
	"go.uber.org/zap"
)

// SystemType identifies each gameplay system.
type SystemType uint

const (
	SystemTypeUnknown SystemType = iota
	SystemTypeQuests
	SystemTypeAchievements
	SystemTypeEconomy
	SystemTypeLoot
	SystemTypeMetrics
	SystemTypeShop
	SystemTypeLibrary
)

// System is the base contract every gameplay system implements.
type System interface {
	GetType() SystemType
}

// Arise combines all gameplay systems behind one hub. Systems reach their
// collaborators through the hub rather than holding direct references.
type Arise interface {
	GetQuestsSystem() QuestsSystem
	GetAchievementsSystem() AchievementsSystem
	GetEconomySystem() EconomySystem
	GetLootSystem() LootSystem
	GetMetricsSystem() MetricsSystem
	GetShopSystem() ShopSystem
	GetLibrarySystem() LibrarySystem

	Catalog() *Catalog
	Clock() Clock
	Rand() Rand
	Logger() *zap.Logger
}

type ariseImpl struct {
	catalog *Catalog
	clock   Clock
	rand    Rand
	logger  *zap.Logger

	systems map[SystemType]System
}

// Option customizes hub construction. Tests use WithClock and WithRand to
// make day boundaries and loot rolls deterministic.
type Option func(*ariseImpl)

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(a *ariseImpl) { a.clock = clock }
}

// WithRand replaces the randomness source.
func WithRand(rnd Rand) Option {
	return func(a *ariseImpl) { a.rand = rnd }
}

// Init initializes an Arise hub with the catalog provided and registers
// every system.
func Init(logger *zap.Logger, catalog *Catalog, opts ...Option) (Arise, error) {
	if catalog == nil {
		return nil, ErrBadInput
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &ariseImpl{
		catalog: catalog,
		clock:   NewRealClock(),
		rand:    NewRand(),
		logger:  logger,
		systems: make(map[SystemType]System),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.register(newQuestsSystem(a))
	a.register(newAchievementsSystem(a))
	a.register(newEconomySystem(a))
	a.register(newLootSystem(a))
	a.register(newMetricsSystem(a))
	a.register(newShopSystem(a))
	a.register(newLibrarySystem(a))

	return a, nil
}

func (a *ariseImpl) register(system System) {
	a.systems[system.GetType()] = system
}

func (a *ariseImpl) Catalog() *Catalog   { return a.catalog }
func (a *ariseImpl) Clock() Clock        { return a.clock }
func (a *ariseImpl) Rand() Rand          { return a.rand }
func (a *ariseImpl) Logger() *zap.Logger { return a.logger }

func (a *ariseImpl) GetQuestsSystem() QuestsSystem {
	if s, ok := a.systems[SystemTypeQuests].(QuestsSystem); ok {
		return s
	}
	return nil
}

func (a *ariseImpl) GetAchievementsSystem() AchievementsSystem {
	if s, ok := a.systems[SystemTypeAchievements].(AchievementsSystem); ok {
		return s
	}
	return nil
}

func (a *ariseImpl) GetEconomySystem() EconomySystem {
	if s, ok := a.systems[SystemTypeEconomy].(EconomySystem); ok {
		return s
	}
	return nil
}

func (a *ariseImpl) GetLootSystem() LootSystem {
	if s, ok := a.systems[SystemTypeLoot].(LootSystem); ok {
		return s
	}
	return nil
}

func (a *ariseImpl) GetMetricsSystem() MetricsSystem {
	if s, ok := a.systems[SystemTypeMetrics].(MetricsSystem); ok {
		return s
	}
	return nil
}

func (a *ariseImpl) GetShopSystem() ShopSystem {
	if s, ok := a.systems[SystemTypeShop].(ShopSystem); ok {
		return s
	}
	return nil
}

func (a *ariseImpl) GetLibrarySystem() LibrarySystem {
	if s, ok := a.systems[SystemTypeLibrary].(LibrarySystem); ok {
		return s
	}
	return nil
}
