package cutoff_crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const listingHTML = `<html><body>
<h1>Downloads</h1>
<ul>
<li><a href="/files/eapcet-2024-r1-lastranks.csv">EAPCET 2024 Round 1 Last Ranks (Cutoff)</a></li>
<li><a href="/files/eapcet-2024-final-lastranks.pdf">EAPCET 2024 Final Phase Round 2 Cut-off Ranks</a></li>
<li><a href="/files/eapcet-2023-lastranks.pdf">EAPCET 2023 Cutoff Ranks</a></li>
<li><a href="/files/hall-ticket-instructions.pdf">Hall Ticket Instructions</a></li>
<li><a href="/notifications">Rank card notification</a></li>
</ul>
</body></html>`

func newTestCrawler(serverURL string) *PortalCrawler {
	c := NewPortalCrawler(serverURL)
	c.Config.ListingPath = "/downloads"
	c.Config.RateLimitDelay = 0
	return c
}

func TestListCutoffFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/downloads" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(listingHTML))
	}))
	defer server.Close()

	crawler := newTestCrawler(server.URL)

	files, err := crawler.ListCutoffFiles(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListCutoffFiles returned error: %v", err)
	}

	// The instructions PDF has no rank-related title and the notification
	// link has no file extension; neither should be picked up.
	if len(files) != 3 {
		t.Fatalf("expected 3 cutoff files, got %d: %+v", len(files), files)
	}

	first := files[0]
	if first.FileType != "csv" {
		t.Errorf("expected csv file type, got %q", first.FileType)
	}
	if first.Year != 2024 || first.Round != 1 {
		t.Errorf("expected year 2024 round 1, got %d/%d", first.Year, first.Round)
	}
	if first.URL != server.URL+"/files/eapcet-2024-r1-lastranks.csv" {
		t.Errorf("expected absolute URL, got %q", first.URL)
	}

	if files[1].FileType != "pdf" || files[1].Round != 2 {
		t.Errorf("unexpected second file: %+v", files[1])
	}
}

func TestListCutoffFilesYearFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingHTML))
	}))
	defer server.Close()

	crawler := newTestCrawler(server.URL)

	files, err := crawler.ListCutoffFiles(context.Background(), 2023)
	if err != nil {
		t.Fatalf("ListCutoffFiles returned error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file for 2023, got %d", len(files))
	}
	if files[0].Year != 2023 {
		t.Errorf("expected year 2023, got %d", files[0].Year)
	}
}

func TestListCutoffFilesBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	crawler := newTestCrawler(server.URL)

	if _, err := crawler.ListCutoffFiles(context.Background(), 0); err == nil {
		t.Fatal("expected error for non-200 listing response")
	}
}

func TestDownload(t *testing.T) {
	content := "institution,branch_code,region,category,gender,cutoff_rank\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files/data.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(content))
	}))
	defer server.Close()

	crawler := newTestCrawler(server.URL)

	got, err := crawler.Download(context.Background(), CutoffFile{
		Title:    "EAPCET 2024 Cutoff",
		URL:      server.URL + "/files/data.csv",
		FileType: "csv",
	})
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if string(got) != content {
		t.Errorf("unexpected download content %q", string(got))
	}
}

func TestClassifyLink(t *testing.T) {
	crawler := newTestCrawler("https://portal.example.com")

	cases := []struct {
		href  string
		title string
		want  bool
	}{
		{"/files/lastranks.pdf", "EAPCET 2024 Cutoff Ranks", true},
		{"/files/lastranks.csv", "Final rank statement", true},
		{"/files/lastranks.xlsx", "EAPCET 2024 Cutoff Ranks", false},
		{"/files/brochure.pdf", "Counselling brochure", false},
		{"", "EAPCET 2024 Cutoff Ranks", false},
	}

	for _, tc := range cases {
		_, ok := crawler.classifyLink(tc.href, tc.title)
		if ok != tc.want {
			t.Errorf("classifyLink(%q, %q) = %v, want %v", tc.href, tc.title, ok, tc.want)
		}
	}
}
