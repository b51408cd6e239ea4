package spreadsheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/album-catalog/internal/model"
)

func catalogOf(records ...model.AlbumRecord) *model.Catalog {
	catalog := model.NewCatalog()
	for _, r := range records {
		catalog.Add(r)
	}
	return catalog
}

func TestFindAnchor(t *testing.T) {
	doc := newMemDocument().withColumn(1, 5, "Alpha", "Charlie", "Charlie", "Echo")

	tests := []struct {
		band string
		want int
	}{
		{"Bravo", 5},
		{"Delta", 7},
		{"Alpha", 5},
		{"Charlie", 7},
		{"Echo", 8},
		{"Zulu", 8},
		// Nothing sorts before it: the highest row is used.
		{"Aardvark", 8},
	}

	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			got, err := FindAnchor(doc, 1, 5, tt.band)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAnchor_IgnoresRowsAboveFirstRow(t *testing.T) {
	doc := newMemDocument().
		withColumn(2, 1, "Band").
		withColumn(2, 2, "Metallica")

	got, err := FindAnchor(doc, 2, 2, "Abba")
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestFindAnchor_EmptySheet(t *testing.T) {
	got, err := FindAnchor(newMemDocument(), 1, 1, "Abba")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestSync_InsertsInSortedPosition(t *testing.T) {
	doc := newMemDocument().withColumn(1, 5, "Alpha", "Charlie", "Charlie", "Echo")
	catalog := catalogOf(
		model.AlbumRecord{Band: "Delta", Year: "1990", Name: "D1", Bitrate: "320", Genre: "Rock"},
		model.AlbumRecord{Band: "Bravo", Year: "1985", Name: "B1", Bitrate: "VBR", Genre: "Pop"},
	)

	report, err := Sync(context.Background(), doc, catalog, Layout{FirstColumn: 1, FirstRow: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie", "Charlie", "Delta", "Echo"}, doc.column(1, 5))
	assert.Equal(t, []string{"Bravo", "1985", "B1", "VBR", "Pop", ""}, doc.row(6, 1, model.ColumnCount))
	assert.Equal(t, []string{"Delta", "1990", "D1", "320", "Rock", ""}, doc.row(9, 1, model.ColumnCount))

	require.Len(t, report.Insertions, 2)
	assert.Equal(t, "Bravo", report.Insertions[0].Band)
	assert.Equal(t, 5, report.Insertions[0].After)
	assert.Equal(t, "Delta", report.Insertions[1].Band)
	assert.Equal(t, 8, report.Insertions[1].After, "the Bravo row shifts Charlie down")
	assert.Equal(t, 1, report.Insertions[1].Rows())
	assert.Equal(t, 2, report.Written)
}

func TestSync_ReportedRowsMatchDocument(t *testing.T) {
	doc := newMemDocument().withColumn(1, 5, "Alpha", "Charlie", "Charlie", "Echo")
	catalog := catalogOf(
		model.AlbumRecord{Band: "Aardvark", Year: "1970", Name: "A1"},
		model.AlbumRecord{Band: "Aardvark", Year: "1971", Name: "A2"},
		model.AlbumRecord{Band: "Bravo", Year: "1985", Name: "B1"},
		model.AlbumRecord{Band: "Delta", Year: "1990", Name: "D1"},
	)

	report, err := Sync(context.Background(), doc, catalog, Layout{FirstColumn: 1, FirstRow: 5})
	require.NoError(t, err)
	require.Len(t, report.Insertions, 3)

	// Aardvark sorts before every row and is appended at the end; the
	// bands after it anchor below it, so no reported row moves afterwards.
	assert.Equal(t, 8, report.Insertions[0].After)
	for _, insertion := range report.Insertions {
		for i, album := range insertion.Albums {
			assert.Equal(t, album.Columns(), doc.row(insertion.After+1+i, 1, model.ColumnCount), album.Name)
		}
	}
}

func TestSync_AlbumsKeepDiscoveryOrder(t *testing.T) {
	doc := newMemDocument().withColumn(2, 3, "Abba", "Queen")
	catalog := catalogOf(
		model.AlbumRecord{Band: "Nirvana", Year: "1991", Name: "Nevermind"},
		model.AlbumRecord{Band: "Nirvana", Year: "1989", Name: "Bleach"},
		model.AlbumRecord{Band: "Nirvana", Year: "1993", Name: "In Utero"},
	)

	report, err := Sync(context.Background(), doc, catalog, Layout{FirstColumn: 2, FirstRow: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"Abba", "Nirvana", "Nirvana", "Nirvana", "Queen"}, doc.column(2, 3))
	assert.Equal(t, []string{"Nevermind", "Bleach", "In Utero"}, []string{
		doc.values[cellRef{4, 4}], doc.values[cellRef{4, 5}], doc.values[cellRef{4, 6}],
	})
	assert.Equal(t, 3, report.Written)
	assert.Equal(t, 1, doc.inserts)
}

func TestSync_EmptyCatalogLeavesDocumentUntouched(t *testing.T) {
	doc := newMemDocument().withColumn(1, 1, "Alpha", "Bravo")

	for _, catalog := range []*model.Catalog{nil, model.NewCatalog()} {
		report, err := Sync(context.Background(), doc, catalog, Layout{FirstColumn: 1, FirstRow: 1})
		require.NoError(t, err)
		assert.Empty(t, report.Insertions)
		assert.Zero(t, report.Written)
	}

	assert.Equal(t, []string{"Alpha", "Bravo"}, doc.column(1, 1))
	assert.Empty(t, doc.highlights, "no styles are registered")
	assert.Zero(t, doc.inserts)
}

func TestSync_ReplicatesHighlightedStyles(t *testing.T) {
	doc := newMemDocument().withColumn(1, 2, "Alpha")
	for col := 1; col <= model.ColumnCount; col++ {
		doc.withStyle(col, 2, StyleID(col))
	}
	// Columns 5 and 6 share a base style.
	doc.withStyle(6, 2, StyleID(5))

	catalog := catalogOf(
		model.AlbumRecord{Band: "Bravo", Year: "2000", Name: "B1"},
		model.AlbumRecord{Band: "Bravo", Year: "2001", Name: "B2"},
		model.AlbumRecord{Band: "Charlie", Year: "2002", Name: "C1"},
	)

	_, err := Sync(context.Background(), doc, catalog, Layout{FirstColumn: 1, FirstRow: 2, Highlight: "00FF00"})
	require.NoError(t, err)

	assert.Len(t, doc.highlights, 5, "one derived style per distinct base")
	for row := 3; row <= 5; row++ {
		for col := 1; col <= model.ColumnCount; col++ {
			style := doc.styles[cellRef{col, row}]
			h, ok := doc.highlights[style]
			require.True(t, ok, "row %d col %d", row, col)
			assert.Equal(t, "00FF00", h.color)
			assert.Equal(t, doc.styles[cellRef{col, 2}], h.base)
		}
	}
	assert.Equal(t, StyleID(1), doc.styles[cellRef{1, 2}], "template row keeps its style")
}

func TestSync_DefaultHighlight(t *testing.T) {
	doc := newMemDocument().withColumn(1, 1, "Alpha")
	_, err := Sync(context.Background(), doc,
		catalogOf(model.AlbumRecord{Band: "Bravo"}),
		Layout{FirstColumn: 1, FirstRow: 1})
	require.NoError(t, err)

	for _, h := range doc.highlights {
		assert.Equal(t, DefaultHighlight, h.color)
	}
}

func TestSync_InsertHook(t *testing.T) {
	doc := newMemDocument().withColumn(1, 1, "M")
	var bands []string
	_, err := Sync(context.Background(), doc,
		catalogOf(model.AlbumRecord{Band: "Z"}, model.AlbumRecord{Band: "A"}),
		Layout{FirstColumn: 1, FirstRow: 1},
		WithInsertHook(func(i Insertion) { bands = append(bands, i.Band) }))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Z"}, bands)
}

func TestSync_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := newMemDocument().withColumn(1, 1, "Alpha")
	_, err := Sync(ctx, doc, catalogOf(model.AlbumRecord{Band: "Bravo"}), Layout{FirstColumn: 1, FirstRow: 1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, doc.inserts)
}

func TestSync_InvalidLayout(t *testing.T) {
	_, err := Sync(context.Background(), newMemDocument(),
		catalogOf(model.AlbumRecord{Band: "Bravo"}), Layout{FirstColumn: 0, FirstRow: 1})
	require.Error(t, err)
}
