package runtime

import "testing"

func TestRegisterClock(t *testing.T) {
	t.Run("AllocatesNonBaseSlots", func(t *testing.T) {
		e := newTestEngine()
		tr := newTestThreadRoot(e)

		id, err := RegisterClock(tr)
		if err != nil {
			t.Fatalf("RegisterClock: %v", err)
		}

		if id == BaseClockForTest {
			t.Fatal("RegisterClock must never return the base clock")
		}
	})

	t.Run("FailsWhenExhausted", func(t *testing.T) {
		e := newTestEngine()
		tr := newTestThreadRoot(e)

		n := len(tr.localObjBuf)
		for i := 1; i < n; i++ {
			if _, err := RegisterClock(tr); err != nil {
				t.Fatalf("RegisterClock %d: %v", i, err)
			}
		}

		if _, err := RegisterClock(tr); err == nil {
			t.Fatal("expected an error once every non-base slot is in use")
		}
	})
}

func TestUnregisterClockThenReregister(t *testing.T) {
	e := newTestEngine()
	tr := newTestThreadRoot(e)

	id, err := RegisterClock(tr)
	if err != nil {
		t.Fatalf("RegisterClock: %v", err)
	}

	UnregisterClock(tr, id)

	if tr.localObjBuf[id].age == tr.currentTime {
		t.Fatal("unregistered clock should be a zombie")
	}

	if _, err := RegisterClock(tr); err != nil {
		t.Fatalf("RegisterClock after unregister: %v", err)
	}
}

func TestUnregisterClockRejectsBaseClock(t *testing.T) {
	e := newTestEngine()
	tr := newTestThreadRoot(e)

	UnregisterClock(tr, 0)

	if tr.localObjBuf[0].age != tr.currentTime {
		t.Fatal("the base clock must never be marked a zombie")
	}
}

// BaseClockForTest avoids importing the stm package (which would create an
// import cycle) just to name clock 0 in assertions.
const BaseClockForTest = ClockID(0)

func TestTickClockRejectsOutOfRangeID(t *testing.T) {
	e := newTestEngine()
	tr := newTestThreadRoot(e)

	if err := TickClock(tr, ClockID(len(tr.localObjBuf))); err == nil {
		t.Fatal("expected an error for an out-of-range clock id")
	}
}
