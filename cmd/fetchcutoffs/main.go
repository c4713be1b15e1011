package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/saikumarp/eapcet-predictor/config"
	"github.com/saikumarp/eapcet-predictor/database"
	"github.com/saikumarp/eapcet-predictor/model"
	"github.com/saikumarp/eapcet-predictor/services"
	cutoffcrawler "github.com/saikumarp/eapcet-predictor/services/cutoff_crawler"
	"github.com/saikumarp/eapcet-predictor/services/objectstore"
	"gorm.io/gorm"
)

// fetchcutoffs discovers published cutoff files on the counselling portal,
// downloads them and runs each through the bulk importer. With -dry-run it
// only lists what it found.
func main() {
	baseURL := flag.String("base-url", "", "counselling portal base URL (required)")
	year := flag.Int("year", 0, "restrict to one counselling year, 0 for all")
	dryRun := flag.Bool("dry-run", false, "list discovered files without importing")
	archive := flag.Bool("archive", false, "also archive downloaded files to Spaces")
	timeout := flag.Duration("timeout", 10*time.Minute, "overall run timeout")
	flag.Parse()

	if *baseURL == "" {
		log.Fatal("-base-url is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	getEnv, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	crawler := cutoffcrawler.NewPortalCrawler(*baseURL)

	files, err := crawler.ListCutoffFiles(ctx, *year)
	if err != nil {
		log.Fatalf("Failed to list cutoff files: %v", err)
	}
	if len(files) == 0 {
		log.Println("No cutoff files found on the portal")
		return
	}

	for _, f := range files {
		fmt.Printf("%-6s year=%-5d round=%-2d %s\n", f.FileType, f.Year, f.Round, f.Title)
	}
	if *dryRun {
		return
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	bulkStore, err := database.Start()
	if err != nil {
		log.Fatalf("Failed to open bulk-insert connection: %v", err)
	}
	defer bulkStore.Close()

	var spaces *objectstore.SpacesClient
	if getEnv.SPACES_ACCESS_KEY != "" {
		spaces, err = objectstore.NewSpacesClient(objectstore.SpacesConfig{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
		})
		if err != nil {
			log.Fatalf("Failed to initialize Spaces client: %v", err)
		}
	}
	if *archive && spaces == nil {
		log.Fatal("-archive requires Spaces credentials in the environment")
	}

	db := store.GetDB().(*gorm.DB)
	importer := services.NewImportService(db, bulkStore, spaces)

	imported, failed := 0, 0
	for _, f := range files {
		content, err := crawler.Download(ctx, f)
		if err != nil {
			log.Printf("Download failed for %s: %v", f.URL, err)
			failed++
			continue
		}

		if *archive {
			name := f.Title
			if name == "" {
				name = f.URL
			}
			if _, err := importer.ArchiveDataset(ctx, sanitizeName(name)+"."+f.FileType, content); err != nil {
				log.Printf("Archiving %s failed: %v", f.Title, err)
			}
		}

		var job *model.CutoffImportJob
		switch f.FileType {
		case "pdf":
			job, err = importer.ImportPDF(ctx, f.URL, content)
		default:
			job, err = importer.ImportCSV(ctx, model.ImportSourceCrawler, f.URL, strings.NewReader(string(content)))
		}
		if err != nil {
			log.Printf("Import failed for %s: %v", f.URL, err)
			failed++
			continue
		}

		log.Printf("Imported %s as batch %s", f.Title, job.BatchID)
		imported++
	}

	fmt.Printf("\nDone: %d imported, %d failed out of %d files\n", imported, failed, len(files))
	if imported > 0 {
		fmt.Println("Reload the API snapshot to publish the new rows.")
	}
}

func sanitizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
