package vista

import (
	"testing"
	"time"
)

func TestKeyPipeline(t *testing.T) {
	field := KeyPipeline.Field(PipelineSearch)
	if field.Key().Name() != "pipeline" {
		t.Errorf("expected key 'pipeline', got %q", field.Key().Name())
	}
}

func TestKeySlot(t *testing.T) {
	field := KeySlot.Field(PipelineList)
	if field.Key().Name() != "slot" {
		t.Errorf("expected key 'slot', got %q", field.Key().Name())
	}
}

func TestKeyFetchID(t *testing.T) {
	field := KeyFetchID.Field("abc")
	if field.Key().Name() != "fetch_id" {
		t.Errorf("expected key 'fetch_id', got %q", field.Key().Name())
	}
}

func TestKeyGeneration(t *testing.T) {
	field := KeyGeneration.Field(3)
	if field.Key().Name() != "generation" {
		t.Errorf("expected key 'generation', got %q", field.Key().Name())
	}
}

func TestKeyQuery(t *testing.T) {
	field := KeyQuery.Field("query")
	if field.Key().Name() != "query" {
		t.Errorf("expected key 'query', got %q", field.Key().Name())
	}
}

func TestKeyPosition(t *testing.T) {
	field := KeyPosition.Field(1)
	if field.Key().Name() != "position" {
		t.Errorf("expected key 'position', got %q", field.Key().Name())
	}
}

func TestKeyCategory(t *testing.T) {
	field := KeyCategory.Field("Random")
	if field.Key().Name() != "category" {
		t.Errorf("expected key 'category', got %q", field.Key().Name())
	}
}

func TestKeyValid(t *testing.T) {
	field := KeyValid.Field(true)
	if field.Key().Name() != "valid" {
		t.Errorf("expected key 'valid', got %q", field.Key().Name())
	}
}

func TestKeyStatus(t *testing.T) {
	field := KeyStatus.Field(StatusSuccess.String())
	if field.Key().Name() != "status" {
		t.Errorf("expected key 'status', got %q", field.Key().Name())
	}
}

func TestKeyDebounce(t *testing.T) {
	field := KeyDebounce.Field(300 * time.Millisecond)
	if field.Key().Name() != "debounce" {
		t.Errorf("expected key 'debounce', got %q", field.Key().Name())
	}
}

func TestKeyError(t *testing.T) {
	field := KeyError.Field("something went wrong")
	if field.Key().Name() != "error" {
		t.Errorf("expected key 'error', got %q", field.Key().Name())
	}
}

func TestKeyOldState(t *testing.T) {
	field := KeyOldState.Field("idle")
	if field.Key().Name() != "old_state" {
		t.Errorf("expected key 'old_state', got %q", field.Key().Name())
	}
}

func TestKeyNewState(t *testing.T) {
	field := KeyNewState.Field("running")
	if field.Key().Name() != "new_state" {
		t.Errorf("expected key 'new_state', got %q", field.Key().Name())
	}
}
