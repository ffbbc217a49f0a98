package commands

import (
	"context"

	devenv "scraperindex/dev/env"
	"scraperindex/lib/dictionary"
)

// openDictionary builds the dictionary described by c. close releases the
// verdict cache, if one is configured.
func openDictionary(ctx context.Context, c DictionaryConfig) (dict *dictionary.Dictionary, close func(), err error) {
	var checker dictionary.Checker = dictionary.NewListChecker(c.Command)
	if c.WordList != "" {
		path, err := devenv.ResolvePath(c.WordList)
		if err != nil {
			return nil, nil, err
		}
		checker, err = dictionary.LoadWordListChecker(path)
		if err != nil {
			return nil, nil, err
		}
	}

	opts := dictionary.Options{
		Checker:     checker,
		CommonWords: c.CommonWords,
		Preload:     c.Preload,
	}
	close = func() {}
	if c.Cache != "" {
		dir, err := devenv.ResolvePath(c.Cache)
		if err != nil {
			return nil, nil, err
		}
		store, err := dictionary.OpenBadgerStore(dir)
		if err != nil {
			return nil, nil, err
		}
		opts.Store = store
		close = func() {
			store.Close()
		}
	}

	dict, err = dictionary.NewDictionary(ctx, opts)
	if err != nil {
		close()
		return nil, nil, err
	}
	return dict, close, nil
}
