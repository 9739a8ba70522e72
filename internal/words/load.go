package words

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgame/assets"
)

// Options selects where Init loads the pool from.
type Options struct {
	File   string // one word per line; '#' comments allowed
	BankDB string // SQLite word bank path; seeded from File or the embedded list when empty
}

// Init loads the word pool.
//
//  1. If BankDB is set, open (and migrate) the word bank, seed it if it has
//     no words yet, and load the pool from it.
//  2. Else if File is set, load that file.
//  3. Else fall back to the embedded list.
//
// Only words of MinLength..MaxLength letters are kept. An empty result is
// reported as ErrEmptyPool.
func Init(ctx context.Context, opts Options) (Pool, error) {
	var (
		pool Pool
		err  error
	)
	switch {
	case opts.BankDB != "":
		pool, err = initBank(ctx, opts)
	case opts.File != "":
		pool, err = LoadFile(opts.File)
	default:
		pool, err = Embedded()
	}
	if err != nil {
		return nil, err
	}
	if pool.Size() == 0 {
		return nil, ErrEmptyPool
	}
	log.Info().Int("words", pool.Size()).Ints("lengths", pool.Lengths()).Msg("word pool loaded")
	return pool, nil
}

func initBank(ctx context.Context, opts Options) (Pool, error) {
	bank, err := OpenBank(opts.BankDB)
	if err != nil {
		return nil, err
	}
	defer bank.Close()

	n, err := bank.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		seed, err := fallbackPool(opts.File)
		if err != nil {
			return nil, err
		}
		if err := bank.Seed(ctx, seed); err != nil {
			return nil, err
		}
		log.Info().Str("bank", opts.BankDB).Int("words", seed.Size()).Msg("word bank seeded")
	}
	return bank.Load(ctx)
}

func fallbackPool(file string) (Pool, error) {
	if file != "" {
		return LoadFile(file)
	}
	return Embedded()
}

// Load reads one word per line. Blank lines and lines starting with '#' are
// skipped; words outside MinLength..MaxLength or not purely alphabetic are dropped.
func Load(r io.Reader) (Pool, error) {
	var list []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		list = append(list, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return NewPool(list).within(), nil
}

// LoadFile loads a word list from path.
func LoadFile(path string) (Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open words file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Embedded returns the pool built from the bundled word list.
func Embedded() (Pool, error) {
	list, err := assets.WordList()
	if err != nil {
		return nil, fmt.Errorf("embedded words: %w", err)
	}
	return NewPool(list).within(), nil
}
