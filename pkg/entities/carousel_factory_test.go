package entities

import (
	"testing"

	"github.com/gonewx/carousel/pkg/components"
	"github.com/gonewx/carousel/pkg/ecs"
)

func TestNewTrackEntity(t *testing.T) {
	em := ecs.NewEntityManager()

	track := NewTrackEntity(em, 160, 224, 16, -35)

	tc, ok := ecs.GetComponent[*components.TrackComponent](em, track)
	if !ok {
		t.Fatal("TrackComponent not added")
	}
	if tc.ImageWidth != 160 || tc.ImageHeight != 224 || tc.Gap != 16 {
		t.Errorf("TrackComponent: got %+v", tc)
	}

	tr, ok := ecs.GetComponent[*components.TransitionComponent](em, track)
	if !ok {
		t.Fatal("TransitionComponent not added")
	}
	if tr.Property != components.PropertyTranslateX || tr.Value != -35 || tr.Active {
		t.Errorf("TransitionComponent: got %+v", tr)
	}
}

func TestNewImageEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	track := NewTrackEntity(em, 160, 224, 16, 0)

	img := NewImageEntity(em, track, 2, nil, "assets/a.png", -40)

	ic, ok := ecs.GetComponent[*components.ImageComponent](em, img)
	if !ok {
		t.Fatal("ImageComponent not added")
	}
	if ic.Track != track || ic.Index != 2 || ic.Source != "assets/a.png" {
		t.Errorf("ImageComponent: got %+v", ic)
	}

	if !ecs.HasComponent[*components.SpriteComponent](em, img) {
		t.Error("SpriteComponent not added")
	}

	tr, ok := ecs.GetComponent[*components.TransitionComponent](em, img)
	if !ok {
		t.Fatal("TransitionComponent not added")
	}
	if tr.Property != components.PropertyObjectPositionX || tr.Value != 60 {
		t.Errorf("focal transition: got %+v, want value 60", tr)
	}
}
