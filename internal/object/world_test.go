package object

import (
	"math/rand"
	"testing"

	"github.com/tomz197/rockfall/internal/loop/config"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/service"
)

const dt = config.FixedTimestep

type recordingListener struct {
	score  int
	shakes int
}

func (l *recordingListener) AwardScore(points int) { l.score += points }
func (l *recordingListener) Shake(float64)         { l.shakes++ }

func newTestWorld(d config.Difficulty) (*World, *recordingListener) {
	w := NewWorld(physics.NewBounds(160, 90), d, service.Services{
		Rand: rand.New(rand.NewSource(42)),
	})
	l := &recordingListener{}
	w.Listener = l
	return w, l
}

// step runs one frame of the world without a collision sweep.
func step(w *World) {
	w.Update(dt)
	w.EndFrame()
}

func countLive(w *World, kind Kind) int {
	n := 0
	for _, h := range w.Live() {
		if e := w.Get(h); e != nil && e.Kind == kind {
			n++
		}
	}
	return n
}

func TestSpawn_PendingUntilEndFrame(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	a := w.MakeAsteroid(AsteroidSmall, physics.Vec2{X: 10, Y: 10}, 0, 0, 0)

	if !a.IsPending() {
		t.Fatal("Expected new asteroid to be pending")
	}
	if countLive(w, KindAsteroid) != 0 {
		t.Error("Expected pending asteroid to stay out of the live list")
	}
	if w.Count(KindAsteroid) != 1 {
		t.Errorf("Expected typed list to see the pending asteroid, got %d", w.Count(KindAsteroid))
	}

	pos := a.Position
	a.SetHeading(0, 10)
	w.Update(dt)
	if a.Position != pos || a.Age != 0 {
		t.Error("Expected pending asteroid not to be updated")
	}

	w.EndFrame()
	if a.IsPending() {
		t.Error("Expected asteroid to be promoted")
	}
	if countLive(w, KindAsteroid) != 1 {
		t.Errorf("Expected 1 live asteroid, got %d", countLive(w, KindAsteroid))
	}
}

func TestKill_DestroyedOnFollowingEndFrame(t *testing.T) {
	w, l := newTestWorld(config.Normal)
	a := w.MakeAsteroid(AsteroidSmall, physics.Vec2{X: 10, Y: 10}, 0, 0, 0)
	h := a.Handle()
	w.EndFrame()

	a.Kill()
	if !a.IsDead() {
		t.Fatal("Expected IsDead right after Kill")
	}

	w.Update(dt)
	if a.Age == 0 {
		t.Error("Expected dying entity to still be updated")
	}
	w.EndFrame()
	if w.Get(h) == nil {
		t.Fatal("Expected dying entity to survive the first end of frame")
	}
	if l.score != 0 {
		t.Errorf("Expected no score before destruction, got %d", l.score)
	}

	step(w)
	if w.Get(h) != nil {
		t.Error("Expected entity to be destroyed on the following end of frame")
	}
	if l.score != config.ScoreSmallAsteroid {
		t.Errorf("Expected score %d, got %d", config.ScoreSmallAsteroid, l.score)
	}
	if w.Count(KindAsteroid) != 0 {
		t.Errorf("Expected typed list to drop the asteroid, got %d", w.Count(KindAsteroid))
	}
}

func TestHandle_StaleAfterSlotReuse(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	old := w.MakeMine(w.MakeShip(physics.Vec2{}, false)).Handle()
	step(w)
	w.MustGet(old).Kill()
	step(w)
	step(w)

	fresh := w.MakeAsteroid(AsteroidSmall, physics.Vec2{}, 0, 0, 0).Handle()
	if fresh.index != old.index {
		t.Fatalf("Expected slot %d to be reused, got %d", old.index, fresh.index)
	}
	if w.Get(old) != nil {
		t.Error("Expected stale handle to resolve to nil")
	}
	if w.Get(fresh) == nil {
		t.Error("Expected fresh handle to resolve")
	}
	if w.Get(Nil) != nil {
		t.Error("Expected Nil handle to resolve to nil")
	}
}

func TestMustGet_PanicsOnStaleHandle(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	defer func() {
		if recover() == nil {
			t.Error("Expected MustGet on a stale handle to panic")
		}
	}()
	w.MustGet(Nil)
}

func TestLiveList_ShipSlotReserved(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	w.MakeAsteroid(AsteroidSmall, physics.Vec2{}, 0, 0, 0)
	step(w)
	if !w.Live()[0].IsNil() {
		t.Fatal("Expected empty ship slot before a ship exists")
	}

	ship := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	step(w)
	if w.Live()[0] != ship.Handle() {
		t.Fatalf("Expected ship in slot 0, got %s", w.Live()[0])
	}

	ship.Kill()
	step(w)
	step(w)
	live := w.Live()
	if !live[0].IsNil() {
		t.Error("Expected slot 0 cleared after ship destruction")
	}
	if w.Get(live[1]) == nil || w.Get(live[1]).Kind != KindAsteroid {
		t.Error("Expected the asteroid to keep its place after slot 0")
	}
}

func TestLiveList_ShipPromotedOverDeadShip(t *testing.T) {
	w, l := newTestWorld(config.Normal)
	old := w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	step(w)

	old.Kill()
	fresh := w.MakeShip(physics.Vec2{X: 20, Y: 20}, true)
	w.EndFrame()

	if w.Get(old.Handle()) != nil {
		t.Error("Expected the dead ship destroyed before its slot was taken")
	}
	if w.Live()[0] != fresh.Handle() {
		t.Errorf("Expected the new ship in slot 0, got %s", w.Live()[0])
	}
	if l.score != config.ScoreShip {
		t.Errorf("Expected score %d, got %d", config.ScoreShip, l.score)
	}
	if n := countLive(w, KindExplosion); n != 1 {
		t.Errorf("Expected the old ship's explosion promoted, got %d", n)
	}
	if n := w.Count(KindShip); n != 1 {
		t.Errorf("Expected one ship in the typed list, got %d", n)
	}
}

func TestLiveList_PanicsOnShipOverLiveShip(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	w.MakeShip(physics.Vec2{X: 80, Y: 45}, false)
	step(w)

	w.MakeShip(physics.Vec2{X: 20, Y: 20}, false)
	defer func() {
		if recover() == nil {
			t.Error("Expected promoting a second live ship to panic")
		}
	}()
	w.EndFrame()
}

func TestEndFrame_ClearsForce(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	a := w.MakeAsteroid(AsteroidLarge, physics.Vec2{X: 80, Y: 45}, 0, 0, 0)
	w.EndFrame()

	a.ApplyForce(physics.Vec2{X: 3})
	w.Update(dt)
	w.EndFrame()
	if a.Force != physics.Zero {
		t.Errorf("Expected force cleared, got %+v", a.Force)
	}
}

func TestUpdate_WrapsKinematicEntities(t *testing.T) {
	w, _ := newTestWorld(config.Normal)
	a := w.MakeAsteroid(AsteroidSmall, physics.Vec2{X: 159.9, Y: 45}, 0, 60, 0)
	w.EndFrame()
	w.Update(dt)
	if !w.Bounds.Contains(a.Position) {
		t.Errorf("Expected wrapped position inside bounds, got %+v", a.Position)
	}
	if a.Position.X > 10 {
		t.Errorf("Expected asteroid to reappear on the left edge, got x=%v", a.Position.X)
	}
}
