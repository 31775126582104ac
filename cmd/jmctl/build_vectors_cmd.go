package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"journalmind/internal/config"
	"journalmind/internal/embedding"
	"journalmind/internal/lexical"
	"journalmind/internal/lexicon"
	"journalmind/internal/storage"
)

const embedBatchSize = 64

var (
	vectorsOut string
	vectorsDim int
)

func init() {
	buildVectorsCmd.Flags().StringVar(&vectorsOut, "out", "./data/vectors.txt", "output word-vector file")
	buildVectorsCmd.Flags().IntVar(&vectorsDim, "dim", 768, "embedding vector dimension")
}

var buildVectorsCmd = &cobra.Command{
	Use:   "build-vectors",
	Short: "Build a word-vector file from the journal vocabulary",
	Long: `build-vectors collects the meaningful vocabulary of all stored entries,
fetches embeddings from the configured embeddings API, and writes a
word2vec-style text file the server loads at startup. The server itself
never talks to the embeddings API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		db, err := storage.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()

		ctx := cmd.Context()
		entries, err := storage.NewEntryRepo(db).ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		lex, err := loadLexicon(cfg.LexiconPath)
		if err != nil {
			return err
		}
		analyzer := lexical.NewAnalyzer(lex)

		vocab := make(map[string]struct{})
		for _, entry := range entries {
			text := lexical.PlainText(entry.Text) + "\n" + lexical.PlainText(entry.Reflection)
			for _, tok := range analyzer.Analyze(text) {
				if len(tok.Lemma) < 4 || lex.IsStopWord(tok.Lemma) {
					continue
				}
				vocab[tok.Lemma] = struct{}{}
			}
		}
		if len(vocab) == 0 {
			return fmt.Errorf("no vocabulary found in %d entries", len(entries))
		}

		words := make([]string, 0, len(vocab))
		for w := range vocab {
			words = append(words, w)
		}
		sort.Strings(words)

		client := embedding.NewClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, vectorsDim)
		vectors := make(map[string][]float32, len(words))
		for start := 0; start < len(words); start += embedBatchSize {
			end := start + embedBatchSize
			if end > len(words) {
				end = len(words)
			}
			batch, err := client.EmbedWords(ctx, words[start:end])
			if err != nil {
				return fmt.Errorf("failed to embed words %d-%d: %w", start, end, err)
			}
			for w, vec := range batch {
				vectors[w] = vec
			}
			fmt.Printf("embedded %d/%d words\n", end, len(words))
		}

		if err := writeVectorFile(vectorsOut, vectorsDim, words, vectors); err != nil {
			return err
		}
		fmt.Printf("wrote %d vectors to %s\n", len(vectors), vectorsOut)
		return nil
	},
}

func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default(), nil
	}
	lex, err := lexicon.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	return lex, nil
}

// writeVectorFile emits word2vec text format: a "count dim" header, then one
// "word v1 ... vn" row per word.
func writeVectorFile(path string, dim int, words []string, vectors map[string][]float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create vector file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d %d\n", len(vectors), dim)
	for _, word := range words {
		vec, ok := vectors[word]
		if !ok {
			continue
		}
		if _, err := w.WriteString(word); err != nil {
			return fmt.Errorf("failed to write vector file: %w", err)
		}
		for _, v := range vec {
			if _, err := w.WriteString(" " + strconv.FormatFloat(float64(v), 'g', -1, 32)); err != nil {
				return fmt.Errorf("failed to write vector file: %w", err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write vector file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush vector file: %w", err)
	}
	return nil
}
