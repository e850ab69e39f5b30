package geom

import (
	"strings"
	"testing"
)

func TestReadPairsCSV(t *testing.T) {
	in := "ID,SourceX,SourceY,Latitude,Longitude,Elevation\n" +
		"7,10,20,49.8,-124.5,300\n" +
		",30,40,,,\n" +
		"x,y,z,,,\n" +
		"2,,,49.9,-124.6,\n"
	pairs, err := ReadPairsCSV(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 3 {
		t.Fatalf("got %d pairs: %+v", len(pairs), pairs)
	}
	if p := pairs[0]; p.ID != 7 || !p.Complete() || p.Target.Elevation == nil || *p.Target.Elevation != 300 {
		t.Errorf("first = %+v", p)
	}
	if p := pairs[1]; p.ID != 1 || p.Source == nil || p.Target != nil {
		t.Errorf("second = %+v", p)
	}
	if p := pairs[2]; p.ID != 2 || p.Source != nil || p.Target.Lng != -124.6 {
		t.Errorf("third = %+v", p)
	}
}

func TestReadPairsCSVMissingColumns(t *testing.T) {
	if _, err := ReadPairsCSV(strings.NewReader("name,value\na,1\n")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ReadPairsCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty csv")
	}
}

func TestReadKML(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark><name>a</name><Point><coordinates>-124.5,49.8,120</coordinates></Point></Placemark>
    <Folder>
      <Placemark><Point><coordinates> -124.6,49.9 </coordinates></Point></Placemark>
    </Folder>
    <Placemark><LineString><coordinates>0,0 1,1</coordinates></LineString></Placemark>
  </Document>
</kml>`
	pts, err := ReadKML(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 2 {
		t.Fatalf("got %d points", len(pts))
	}
	if pts[0].Lat != 49.8 || pts[0].Lng != -124.5 || pts[0].Elevation == nil || *pts[0].Elevation != 120 {
		t.Errorf("first = %+v", pts[0])
	}
	if pts[1].Elevation != nil {
		t.Errorf("second should have no elevation: %+v", pts[1])
	}
}

func TestReadGeoJSON(t *testing.T) {
	in := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[-124.5,49.8,55]}},
		{"type":"Feature","geometry":{"type":"MultiPoint","coordinates":[[1,2],[3,4]]}},
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[[5,6],[7,8]]}}
	]}`
	pts, err := ReadGeoJSON(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 3 {
		t.Fatalf("got %d points", len(pts))
	}
	if pts[0].Lat != 49.8 || *pts[0].Elevation != 55 || pts[2].Lat != 4 || pts[2].Lng != 3 {
		t.Errorf("points = %+v", pts)
	}
	if _, err := ReadGeoJSON(strings.NewReader(`{"type":"Polygon","coordinates":[]}`)); err == nil {
		t.Error("expected unsupported type error")
	}
}

func TestParseWKT(t *testing.T) {
	tests := []struct {
		in      string
		n       int
		lat     float64
		wantErr bool
	}{
		{"POINT(-124.5 49.8)", 1, 49.8, false},
		{"point z (-124.5 49.8 100)", 1, 49.8, false},
		{"MULTIPOINT((1 2), (3 4))", 2, 2, false},
		{"MULTIPOINT(1 2, 3 4)", 2, 2, false},
		{"LINESTRING(1 2, 3 4)", 0, 0, true},
		{"POINT()", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tt := range tests {
		pts, err := ParseWKT(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWKT(%q) err = %v", tt.in, err)
			continue
		}
		if tt.wantErr {
			continue
		}
		if len(pts) != tt.n || pts[0].Lat != tt.lat {
			t.Errorf("ParseWKT(%q) = %+v", tt.in, pts)
		}
	}
}

func TestBBox(t *testing.T) {
	var b BBox
	b = b.Extend(1, 2, false)
	b = b.Extend(-1, 5, true)
	if b != (BBox{MinX: -1, MinY: 2, MaxX: 1, MaxY: 5}) {
		t.Fatalf("bbox = %+v", b)
	}
	p := BBox{MinX: 3, MinY: 3, MaxX: 3, MaxY: 3}.Pad(0, 10)
	if p.Empty() || p.MaxX-p.MinX != 10 {
		t.Fatalf("padded = %+v", p)
	}
}
