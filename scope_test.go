package nasc_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	nasc "github.com/toutaio/nasc"
)

type ScopeTestSuite struct {
	suite.Suite
}

func TestScopeSuite(t *testing.T) {
	suite.Run(t, new(ScopeTestSuite))
}

type scopedThing struct{ n int }

var scopedThingCounter int

func newScopedThing() *scopedThing {
	scopedThingCounter++
	return &scopedThing{n: scopedThingCounter}
}

// Scenario 2: scope isolation — two scopes each get their own instance,
// but repeated resolves within one scope share it.
func (s *ScopeTestSuite) TestScopeIsolation() {
	c, err := nasc.New()
	s.Require().NoError(err)

	token := nasc.CreateToken("ScopedThing")
	ctor := nasc.NewConstructor(newScopedThing)
	m := nasc.RegisterModule()
	m.Scoped(ctor).As(token)
	s.Require().NoError(c.Use(m))

	scope1, err := c.CreateScope(nasc.RegisterScopeModule())
	s.Require().NoError(err)
	scope2, err := c.CreateScope(nasc.RegisterScopeModule())
	s.Require().NoError(err)

	a1, err := scope1.Resolve(token)
	s.Require().NoError(err)
	a1Again, err := scope1.Resolve(token)
	s.Require().NoError(err)
	b1, err := scope2.Resolve(token)
	s.Require().NoError(err)

	s.Same(a1, a1Again)
	s.NotSame(a1, b1)
}

// Scenario 3: external override — a pre-built value provided into a
// scope is used in place of construction.
type player struct{ name string }

type usesPlayer struct{ p *player }

func (s *ScopeTestSuite) TestExternalOverride() {
	c, err := nasc.New()
	s.Require().NoError(err)

	playerToken := nasc.CreateToken("Player")
	userToken := nasc.CreateToken("UsesPlayer")

	playerCtor := nasc.NewConstructor(func() *player { return &player{name: "Default"} })
	userCtor := nasc.NewConstructor(func(p *player) *usesPlayer { return &usesPlayer{p: p} })
	nasc.Describe(userCtor, nasc.Dep(playerToken))

	m := nasc.RegisterModule()
	m.Scoped(playerCtor).As(playerToken)
	m.Scoped(userCtor).As(userToken)
	s.Require().NoError(c.Use(m))

	scope, err := c.CreateScope(nasc.RegisterScopeModule())
	s.Require().NoError(err)

	want := &player{name: "Arthur"}
	s.Require().NoError(scope.ProvideExternal(playerToken, want))

	inst, err := scope.Resolve(userToken)
	s.Require().NoError(err)
	s.Same(want, inst.(*usesPlayer).p)
}

// Scenario 6: destroying a scope unregisters its tickables.
type countingTickable struct{ ticks int }

func (t *countingTickable) Tick(deltaTime float64) { t.ticks++ }

func (s *ScopeTestSuite) TestDestroyUnregistersTickables() {
	c, err := nasc.New()
	s.Require().NoError(err)

	token := nasc.CreateToken("Tickable")
	ctor := nasc.NewConstructor(func() *countingTickable { return &countingTickable{} })
	m := nasc.RegisterModule()
	m.Scoped(ctor).As(token)
	s.Require().NoError(c.Use(m))

	scope, err := c.CreateScope(nasc.RegisterScopeModule())
	s.Require().NoError(err)

	inst, err := scope.Resolve(token)
	s.Require().NoError(err)
	tickable := inst.(*countingTickable)

	dispatcher := c.TickDispatcher()
	s.Equal(1, dispatcher.DebugInfo().LogicTickables)

	s.Require().NoError(scope.Destroy())
	s.Equal(0, dispatcher.DebugInfo().LogicTickables)
	s.Equal(0, tickable.ticks) // never actually ticked in this test
}

type destroyCounter struct{ destroyed bool }

func (d *destroyCounter) Destroy() error {
	d.destroyed = true
	return nil
}

func (s *ScopeTestSuite) TestDestroyingParentDestroysChildScopes() {
	c, err := nasc.New()
	s.Require().NoError(err)

	token := nasc.CreateToken("Destroyable")
	ctor := nasc.NewConstructor(func() *destroyCounter { return &destroyCounter{} })
	m := nasc.RegisterModule()
	m.Scoped(ctor).As(token)
	s.Require().NoError(c.Use(m))

	parent, err := c.CreateScope(nasc.RegisterScopeModule())
	s.Require().NoError(err)
	child, err := parent.CreateChildScope()
	s.Require().NoError(err)

	childInst, err := child.Resolve(token)
	s.Require().NoError(err)

	s.Require().NoError(parent.Destroy())
	s.True(childInst.(*destroyCounter).destroyed)

	_, err = child.CreateChildScope()
	s.Error(err)
}

func (s *ScopeTestSuite) TestDestroyIsIdempotent() {
	c, err := nasc.New()
	s.Require().NoError(err)

	scope, err := c.CreateScope(nasc.RegisterScopeModule())
	s.Require().NoError(err)

	s.Require().NoError(scope.Destroy())
	s.Require().NoError(scope.Destroy())
}

func (s *ScopeTestSuite) TestCreateChildScopeHonorsCallerSuppliedID() {
	c, err := nasc.New()
	s.Require().NoError(err)

	parent, err := c.CreateScope(nasc.RegisterScopeModule())
	s.Require().NoError(err)

	autoChild, err := parent.CreateChildScope()
	s.Require().NoError(err)
	s.NotEmpty(autoChild.ScopeID())

	namedChild, err := parent.CreateChildScope("checkout-session")
	s.Require().NoError(err)
	s.Equal("checkout-session", namedChild.ScopeID())
}

type destroyOrderRecorder struct {
	name  string
	order *[]string
}

func (d *destroyOrderRecorder) Destroy() error {
	*d.order = append(*d.order, d.name)
	return nil
}

// Destroyables must be torn down in reverse creation order so a dependent
// (created after, and possibly holding onto, a dependency) is destroyed
// before the dependency it might still touch.
func (s *ScopeTestSuite) TestDestroyRunsDestroyablesInReverseCreationOrder() {
	c, err := nasc.New()
	s.Require().NoError(err)

	var order []string
	firstToken := nasc.CreateToken("First")
	secondToken := nasc.CreateToken("Second")
	thirdToken := nasc.CreateToken("Third")

	firstCtor := nasc.NewConstructor(func() *destroyOrderRecorder { return &destroyOrderRecorder{name: "first", order: &order} })
	secondCtor := nasc.NewConstructor(func() *destroyOrderRecorder { return &destroyOrderRecorder{name: "second", order: &order} })
	thirdCtor := nasc.NewConstructor(func() *destroyOrderRecorder { return &destroyOrderRecorder{name: "third", order: &order} })

	m := nasc.RegisterModule()
	m.Scoped(firstCtor).As(firstToken)
	m.Scoped(secondCtor).As(secondToken)
	m.Scoped(thirdCtor).As(thirdToken)
	s.Require().NoError(c.Use(m))

	scope, err := c.CreateScope(nasc.RegisterScopeModule())
	s.Require().NoError(err)

	_, err = scope.Resolve(firstToken)
	s.Require().NoError(err)
	_, err = scope.Resolve(secondToken)
	s.Require().NoError(err)
	_, err = scope.Resolve(thirdToken)
	s.Require().NoError(err)

	s.Require().NoError(scope.Destroy())
	s.Equal([]string{"third", "second", "first"}, order)
}
