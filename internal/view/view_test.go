package view

import (
	"reflect"
	"strings"
	"testing"
)

type row struct {
	Name  string
	Email string
}

func rowFields(r row) []string {
	return []string{r.Name, r.Email}
}

var sample = []row{
	{"Ana Ruiz", "ana@municipio.gob"},
	{"Carlos Pérez", "carlos@municipio.gob"},
	{"María López", "maria@example.com"},
	{"Pedro Gómez", "pedro@example.com"},
}

func TestFilter_EmptyQueryReturnsInput(t *testing.T) {
	got := Filter(sample, "", rowFields)
	if !reflect.DeepEqual(got, sample) {
		t.Errorf("Expected original slice, got %v", got)
	}
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	got := Filter(sample, "ANA", rowFields)
	if len(got) != 1 || got[0].Name != "Ana Ruiz" {
		t.Errorf("Expected [Ana Ruiz], got %v", got)
	}

	got = Filter(sample, "example.com", rowFields)
	if len(got) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(got))
	}
}

func TestFilter_OutputIsSubsetAndEveryItemMatches(t *testing.T) {
	got := Filter(sample, "o", rowFields)
	if len(got) > len(sample) {
		t.Fatalf("Filter grew the input: %d > %d", len(got), len(sample))
	}
	for _, item := range got {
		matched := false
		for _, f := range rowFields(item) {
			if containsFold(f, "o") {
				matched = true
			}
		}
		if !matched {
			t.Errorf("Item %v does not match query", item)
		}
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func TestFilter_NoMatch(t *testing.T) {
	got := Filter(sample, "zzzz", rowFields)
	if len(got) != 0 {
		t.Errorf("Expected no matches, got %v", got)
	}
}

func TestPaginate_PartitionReconstructsInput(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	var rebuilt []int
	_, totalPages := Paginate(items, 1, 5)
	if totalPages != 5 {
		t.Fatalf("Expected 5 pages, got %d", totalPages)
	}
	for page := 1; page <= totalPages; page++ {
		pageItems, _ := Paginate(items, page, 5)
		if len(pageItems) > 5 {
			t.Errorf("Page %d exceeds page size: %d", page, len(pageItems))
		}
		rebuilt = append(rebuilt, pageItems...)
	}
	if !reflect.DeepEqual(rebuilt, items) {
		t.Errorf("Concatenated pages do not reconstruct input")
	}
}

func TestPaginate_ClampsPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	pageItems, total := Paginate(items, 99, 2)
	if total != 3 {
		t.Fatalf("Expected 3 pages, got %d", total)
	}
	if !reflect.DeepEqual(pageItems, []int{5}) {
		t.Errorf("Expected last page [5], got %v", pageItems)
	}

	pageItems, _ = Paginate(items, 0, 2)
	if !reflect.DeepEqual(pageItems, []int{1, 2}) {
		t.Errorf("Expected first page [1 2], got %v", pageItems)
	}
}

func TestPaginate_Empty(t *testing.T) {
	pageItems, total := Paginate([]int{}, 1, 10)
	if total != 0 || len(pageItems) != 0 {
		t.Errorf("Expected empty result, got %v (%d pages)", pageItems, total)
	}
}

func TestPageWindow_Table(t *testing.T) {
	cases := []struct {
		current, total int
		want           []int
	}{
		{1, 10, []int{1, 2, 3, 4, EllipsisPage, 10}},
		{2, 10, []int{1, 2, 3, 4, EllipsisPage, 10}},
		{3, 10, []int{1, 2, 3, 4, EllipsisPage, 10}},
		{5, 10, []int{1, EllipsisPage, 4, 5, 6, EllipsisPage, 10}},
		{8, 10, []int{1, EllipsisPage, 7, 8, 9, 10}},
		{10, 10, []int{1, EllipsisPage, 7, 8, 9, 10}},
		{3, 4, []int{1, 2, 3, 4}},
		{1, 1, []int{1}},
		{2, 5, []int{1, 2, 3, 4, 5}},
		{4, 6, []int{1, EllipsisPage, 3, 4, 5, 6}},
	}
	for _, tc := range cases {
		got := PageWindow(tc.current, tc.total)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("PageWindow(%d,%d) = %v, want %v", tc.current, tc.total, got, tc.want)
		}
	}
}

func TestApply_QueryResetsOutOfRangePage(t *testing.T) {
	// Page 3 is valid for the unfiltered set but not after filtering;
	// the derived page must land back in range.
	items := make([]row, 30)
	for i := range items {
		items[i] = row{Name: "Fila", Email: "x@example.com"}
	}
	items[0].Name = "Ana Ruiz"

	state := Apply(items, "ana", rowFields, 3, 10)
	if state.Page != 1 || state.TotalPages != 1 {
		t.Errorf("Expected page 1/1, got %d/%d", state.Page, state.TotalPages)
	}
	if state.TotalItems != 1 || len(state.Items) != 1 {
		t.Errorf("Expected one matching item, got %d", state.TotalItems)
	}
}
