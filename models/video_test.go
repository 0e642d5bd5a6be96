package models

import "testing"

func TestValidateShape(t *testing.T) {
	tests := []struct {
		name    string
		video   Video
		wantErr bool
	}{
		{
			"manual with file url",
			Video{Source: VideoSourceManual, VideoURL: "https://cdn.example/v.mp4"},
			false,
		},
		{
			"manual without file url",
			Video{Source: VideoSourceManual},
			true,
		},
		{
			"manual with scenes",
			Video{Source: VideoSourceManual, VideoURL: "https://cdn.example/v.mp4", Scenes: SceneList{{Text: "x"}}},
			true,
		},
		{
			"ai with scenes",
			Video{Source: VideoSourceAI, Scenes: SceneList{{Text: "x"}}},
			false,
		},
		{
			"ai with file url",
			Video{Source: VideoSourceAI, VideoURL: "https://cdn.example/v.mp4"},
			true,
		},
		{
			"pending ai without scenes",
			Video{Source: VideoSourceAI},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.video.ValidateShape()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShape() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSceneListScan(t *testing.T) {
	raw := `[{"text":"a","image_prompt":"b","image_url":"c"},{"text":"d","image_prompt":"e"}]`

	// Drivers hand back either bytes or strings depending on the backend.
	for _, value := range []interface{}{[]byte(raw), raw} {
		var list SceneList
		if err := list.Scan(value); err != nil {
			t.Fatalf("Scan(%T): %v", value, err)
		}
		if len(list) != 2 {
			t.Fatalf("Scan(%T) len = %d, want 2", value, len(list))
		}
		if list[0].Text != "a" || list[0].ImageURL != "c" || list[1].ImagePrompt != "e" {
			t.Errorf("Scan(%T) decoded wrong: %+v", value, list)
		}
	}

	var list SceneList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("Scan(nil) = %v, want empty list", list)
	}

	if err := list.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestSceneListValueNil(t *testing.T) {
	var list SceneList
	v, err := list.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "[]" {
		t.Errorf("nil value = %v, want \"[]\"", v)
	}
}

func TestStringListRoundTrip(t *testing.T) {
	in := StringList{"TikTok", "YouTube Shorts"}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out StringList
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != 2 || out[0] != "TikTok" || out[1] != "YouTube Shorts" {
		t.Errorf("round trip = %v", out)
	}
}
