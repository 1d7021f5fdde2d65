// Package main provides the seed tool that generates sample export archives
// so the exporter can be exercised locally.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"igcorpus/internal/config"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
)

// Config holds the seeder configuration.
type Config struct {
	Root       string
	Users      int
	Posts      int
	Seed       int64
	ConfigPath string
}

func logInfo(msg string) {
	fmt.Printf("%s[SEEDER]%s %s\n", colorGreen, colorReset, msg)
}

func logWarn(msg string) {
	fmt.Printf("%s[SEEDER]%s %s\n", colorYellow, colorReset, msg)
}

func logError(msg string) {
	fmt.Printf("%s[SEEDER]%s %s\n", colorRed, colorReset, msg)
}

// sentences deliberately carry commas, tabs and newlines so the sanitizer
// has something to chew on.
var sentences = []string{
	"golden hour at the pier,\nno filter needed",
	"coffee first,\tthen the world",
	"tried the new ramen spot, 10/10 would queue again",
	"rain all day\nstill went for the run",
	"weekend market haul,\tso many colors",
	"sunset from the rooftop, unreal",
	"new zine drop,\ncover art by a friend",
	"trail dust and summit views",
	"birthday dinner,\tthree desserts, zero regrets",
	"museum day: sketches, notes,\nand bad museum coffee",
}

var tagPool = []string{
	"fashion", "ootd", "food", "travel", "nofilter",
	"streetphoto", "film", "latte", "fitness", "art",
}

var userNames = []string{
	"aurora.lens",
	"bikepacking_ben",
	"cafecrawl",
	"dune_sketches",
	"emberroast",
	"fernweh.film",
	"galleryhopper",
	"hikes_with_harriet",
}

func main() {
	cfg := parseConfig()

	if cfg.Users <= 0 {
		logError("-users must be at least 1")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	logInfo(fmt.Sprintf("Seeding %d users under %s (seed %d)...", cfg.Users, cfg.Root, cfg.Seed))

	for i := 0; i < cfg.Users; i++ {
		user := userName(i)

		count, err := writeUserArchive(rng, cfg.Root, user, cfg.Posts)
		if err != nil {
			logError(fmt.Sprintf("Failed to seed %s: %v", user, err))
			os.Exit(1)
		}

		if count == 0 {
			logWarn(fmt.Sprintf("  %s: empty archive", user))
			continue
		}

		logInfo(fmt.Sprintf("  %s: %d posts", user, count))
	}

	if cfg.ConfigPath != "" {
		if err := writeExporterConfig(cfg); err != nil {
			logError(fmt.Sprintf("Failed to write exporter config: %v", err))
			os.Exit(1)
		}

		logInfo(fmt.Sprintf("Wrote exporter config to %s", cfg.ConfigPath))
	}

	logInfo("===========================================")
	logInfo("Seeding complete!")
	logInfo("===========================================")
}

func parseConfig() Config {
	root := flag.String("root", "", "Root directory for generated archives (default: IGCORPUS_INPUT or data)")
	users := flag.Int("users", 3, "Number of users to generate")
	posts := flag.Int("posts", 6, "Maximum posts per user")
	seed := flag.Int64("seed", 42, "Random seed for reproducible archives")
	configPath := flag.String("write-config", "", "Also write an exporter config pointing at the generated root")
	flag.Parse()

	// Resolve root with fallback
	resolved := *root
	if resolved == "" {
		resolved = os.Getenv("IGCORPUS_INPUT")
	}
	if resolved == "" {
		resolved = "data"
	}

	return Config{
		Root:       resolved,
		Users:      *users,
		Posts:      *posts,
		Seed:       *seed,
		ConfigPath: *configPath,
	}
}

func userName(i int) string {
	if i < len(userNames) {
		return userNames[i]
	}

	return fmt.Sprintf("user_%02d", i)
}

// writeUserArchive generates one user's archive and returns the post count.
// The caption field name is fixed per user so the whole archive resolves to
// one schema, the way real exports behave.
func writeUserArchive(rng *rand.Rand, root, user string, maxPosts int) (int, error) {
	captionField := "caption"
	if rng.Intn(2) == 0 {
		captionField = "edge_media_to_caption"
	}

	count := rng.Intn(maxPosts + 1)
	posts := make([]map[string]any, 0, count)

	for i := 0; i < count; i++ {
		// The first post always carries tags so the archive's field union
		// resolves a tags column.
		posts = append(posts, makePost(rng, captionField, i == 0))
	}

	dir := filepath.Join(root, user)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := encodeArchive(rng, posts)
	if err != nil {
		return 0, err
	}

	path := filepath.Join(dir, user+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return count, nil
}

func makePost(rng *rand.Rand, captionField string, forceTags bool) map[string]any {
	post := map[string]any{
		"urls":       postURLs(rng),
		"comments":   makeComments(rng),
		captionField: makeCaption(rng, captionField),
	}

	if forceTags {
		post["tags"] = pickTags(rng)
	} else {
		switch rng.Intn(4) {
		case 0:
			// no tags field at all
		case 1:
			post["tags"] = nil
		default:
			post["tags"] = pickTags(rng)
		}
	}

	// Some exports carry a numeric id; the exporter ignores it.
	if rng.Intn(2) == 0 {
		post["id"] = fmt.Sprintf("%d", rng.Int63())
	}

	return post
}

func makeCaption(rng *rand.Rand, field string) map[string]any {
	text := sentences[rng.Intn(len(sentences))]

	if field == "edge_media_to_caption" || rng.Intn(3) == 0 {
		edges := []map[string]any{}
		if rng.Intn(5) > 0 {
			edges = append(edges, map[string]any{"node": map[string]any{"text": text}})
		}

		return map[string]any{"edges": edges}
	}

	return map[string]any{"text": text}
}

func makeComments(rng *rand.Rand) map[string]any {
	count := rng.Intn(4)
	data := make([]map[string]any, 0, count)

	for i := 0; i < count; i++ {
		data = append(data, map[string]any{"text": sentences[rng.Intn(len(sentences))]})
	}

	return map[string]any{"data": data}
}

func pickTags(rng *rand.Rand) []string {
	count := 1 + rng.Intn(4)
	tags := make([]string, 0, count)

	for i := 0; i < count; i++ {
		tags = append(tags, tagPool[rng.Intn(len(tagPool))])
	}

	return tags
}

func postURLs(rng *rand.Rand) []string {
	count := 1 + rng.Intn(2)
	urls := make([]string, 0, count)

	for i := 0; i < count; i++ {
		urls = append(urls, fmt.Sprintf("https://instagram.com/p/%s/", shortcode(rng)))
	}

	return urls
}

const shortcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func shortcode(rng *rand.Rand) string {
	b := make([]byte, 11)

	for i := range b {
		b[i] = shortcodeAlphabet[rng.Intn(len(shortcodeAlphabet))]
	}

	return string(b)
}

// encodeArchive randomly picks between a pretty-printed array archive and a
// JSON-lines stream; the exporter reads both.
func encodeArchive(rng *rand.Rand, posts []map[string]any) ([]byte, error) {
	if rng.Intn(3) > 0 {
		data, err := json.MarshalIndent(posts, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode archive: %w", err)
		}

		return data, nil
	}

	var buf bytes.Buffer

	for _, post := range posts {
		line, err := json.Marshal(post)
		if err != nil {
			return nil, fmt.Errorf("failed to encode post: %w", err)
		}

		buf.Write(line)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

func writeExporterConfig(cfg Config) error {
	exporterCfg := config.DefaultConfig()
	exporterCfg.Exporter.Input.Root = cfg.Root

	if dir := filepath.Dir(cfg.ConfigPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}

	return exporterCfg.SaveConfig(cfg.ConfigPath)
}
