// Renders placeholder badge images for catalog badges that have a color
// but no uploaded artwork: a colored disc with the badge's initial.
//
// Writes PNGs to the assets dir, or uploads them through the configured
// storage provider with -upload.
//
// Usage: go run scripts/generate_assets/main.go [-out assets/badges] [-upload]
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"skillforge_backend/internal/config"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/service"
	"skillforge_backend/pkg/database"
	"skillforge_backend/pkg/logger"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"gopkg.in/yaml.v3"
)

const badgeSize = 512

var defaultPalette = []color.NRGBA{
	{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF},
	{R: 0x21, G: 0x96, B: 0xF3, A: 0xFF},
	{R: 0xFF, G: 0x98, B: 0x00, A: 0xFF},
	{R: 0x9C, G: 0x27, B: 0xB0, A: 0xFF},
	{R: 0xF4, G: 0x43, B: 0x36, A: 0xFF},
}

func main() {
	outDir := flag.String("out", "assets/badges", "output directory for generated images")
	upload := flag.Bool("upload", false, "upload images via the configured storage provider")
	flag.Parse()

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("cannot read config file: %v", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("cannot parse config file: %v", err)
	}
	logger.InitLogger(&cfg)

	client, db, err := database.InitMongo(&cfg.Mongo)
	if err != nil {
		log.Fatalf("cannot connect to mongodb: %v", err)
	}
	defer database.CloseMongo(client)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	badges := repository.NewBadgeRepository(db)
	all, err := badges.FindAll(ctx)
	if err != nil {
		log.Fatalf("cannot list badges: %v", err)
	}

	face, err := loadFace(196)
	if err != nil {
		log.Fatalf("cannot load font: %v", err)
	}

	var storage *service.StorageService
	if *upload {
		storage = service.NewStorageService(&cfg, logger.Log)
	} else if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("cannot create output dir: %v", err)
	}

	generated := 0
	for i, badge := range all {
		if badge.Image != nil && *badge.Image != "" {
			continue
		}

		bg := defaultPalette[i%len(defaultPalette)]
		if badge.Color != nil {
			if c, err := parseHexColor(*badge.Color); err == nil {
				bg = c
			}
		}

		dc := gg.NewContext(badgeSize, badgeSize)
		dc.DrawCircle(badgeSize/2, badgeSize/2, badgeSize/2)
		dc.Clip()
		dc.SetColor(bg)
		dc.DrawRectangle(0, 0, badgeSize, badgeSize)
		dc.Fill()

		dc.SetFontFace(face)
		dc.SetColor(color.White)
		initial := badgeInitial(badge.Title)
		tw, th := dc.MeasureString(initial)
		dc.DrawString(initial, badgeSize/2-tw/2, badgeSize/2+th/2)

		name := badge.ID.Hex() + ".png"
		if *upload {
			path := filepath.Join(os.TempDir(), name)
			if err := dc.SavePNG(path); err != nil {
				log.Fatalf("cannot render %s: %v", name, err)
			}
			url, err := storage.UploadFile(ctx, "badges/"+name, path, "image/png")
			os.Remove(path)
			if err != nil {
				log.Fatalf("cannot upload %s: %v", name, err)
			}
			fmt.Printf("uploaded %s -> %s\n", badge.Title, url)
		} else {
			path := filepath.Join(*outDir, name)
			if err := dc.SavePNG(path); err != nil {
				log.Fatalf("cannot render %s: %v", name, err)
			}
			fmt.Printf("rendered %s -> %s\n", badge.Title, path)
		}
		generated++
	}

	fmt.Printf("done: %d of %d badges generated\n", generated, len(all))
}

func badgeInitial(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "?"
	}
	return strings.ToUpper(title[:1])
}

func parseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("expected 6 hex chars")
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex: %w", err)
	}
	return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xFF}, nil
}

func loadFace(size float64) (font.Face, error) {
	parsed, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}
