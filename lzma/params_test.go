package lzma

import "testing"

func TestPropertiesValidate(t *testing.T) {
	if err := DefaultProperties(1 << 20).Validate(); err != nil {
		t.Errorf("DefaultProperties(1<<20).Validate() = %s; want nil", err)
	}
	bad := Properties{LC: 4, LP: 0, PB: 2, DictSize: 1 << 20}
	if err := bad.Validate(); err == nil {
		t.Error("Validate accepted lc=4, which lzip never allows")
	}
	tooSmall := DefaultProperties(1 << 4)
	if err := tooSmall.Validate(); err == nil {
		t.Error("Validate accepted a dictionary size below minDictSize")
	}
}

func TestLevelPresetClampsRange(t *testing.T) {
	if got := LevelPreset(-1); got != levels[0] {
		t.Errorf("LevelPreset(-1) = %+v; want level 0 %+v", got, levels[0])
	}
	if got := LevelPreset(20); got != levels[9] {
		t.Errorf("LevelPreset(20) = %+v; want level 9 %+v", got, levels[9])
	}
	for i := 0; i <= 9; i++ {
		if got := LevelPreset(i); got != levels[i] {
			t.Errorf("LevelPreset(%d) = %+v; want %+v", i, got, levels[i])
		}
	}
}
