package model

import (
	"encoding/json"
	"testing"
)

func TestLargestSkipsMissingLinks(t *testing.T) {
	pc := &PictureCollection{Sizes: []Picture{
		{Width: 1920, Height: 1080},
		{Width: 640, Height: 360, Link: "https://i/640"},
		{Width: 295, Height: 166, Link: "https://i/295"},
	}}

	p, ok := pc.Largest()
	if !ok || p.Link != "https://i/640" {
		t.Fatalf("unexpected largest picture: %+v", p)
	}
}

func TestLargestOnAbsentCollection(t *testing.T) {
	var pc *PictureCollection
	if _, ok := pc.Largest(); ok {
		t.Fatalf("absent collection has no pictures")
	}
	if _, ok := (&PictureCollection{}).Largest(); ok {
		t.Fatalf("empty collection has no pictures")
	}
}

func TestPictureCollectionDropsBadSizes(t *testing.T) {
	var pc PictureCollection
	doc := `{"uri":"/pictures/1","active":"yes","sizes":[{"width":"x"},{"width":640,"height":360,"link":"https://i/640"},7]}`
	if err := json.Unmarshal([]byte(doc), &pc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if pc.URI == nil || pc.Active != nil {
		t.Fatalf("only the bad member should be absent: %+v", pc)
	}
	if len(pc.Sizes) != 1 || pc.Sizes[0].Link != "https://i/640" {
		t.Fatalf("expected only the well-formed rendition, got %+v", pc.Sizes)
	}
}

func TestAlbumKeepsPicturesWithBadSize(t *testing.T) {
	var a Album
	if err := json.Unmarshal([]byte(`{"pictures":{"sizes":[{"width":"x"},{"width":100,"link":"https://i/100"}]}}`), &a); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	p, ok := a.PictureCollection.Largest()
	if !ok || p.Link != "https://i/100" {
		t.Fatalf("pictures should survive one bad rendition: %+v", a.PictureCollection)
	}
}
