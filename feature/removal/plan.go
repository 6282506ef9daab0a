package removal

import (
	"context"
	"fmt"
	"io"
	"sort"

	"rods-warden/core/store"

	"go.uber.org/zap"
)

// CommandKind distinguishes the two removal commands.
type CommandKind int

const (
	// RemoveObject removes a single data object.
	RemoveObject CommandKind = iota
	// RemoveCollection removes a single, empty collection.
	RemoveCollection
)

func (k CommandKind) String() string {
	if k == RemoveCollection {
		return "irmdir"
	}
	return "irm"
}

// Command is one entry of a removal plan.
type Command struct {
	Kind CommandKind
	Path string
}

// Plan walks the tree under root and returns removal commands ordered so
// that every collection's command appears strictly after the commands for
// everything beneath it.
func Plan(ctx context.Context, c store.Client, root string) ([]Command, error) {
	kind, err := c.Stat(ctx, root)
	if err != nil {
		return nil, err
	}

	switch kind {
	case store.KindDataObject:
		return []Command{{Kind: RemoveObject, Path: root}}, nil
	case store.KindCollection:
		var cmds []Command
		var collections []string
		if err := walk(ctx, c, root, &cmds, &collections); err != nil {
			return nil, err
		}

		// Reverse lexical order puts child collections before their parents.
		sort.Sort(sort.Reverse(sort.StringSlice(collections)))
		for _, coll := range collections {
			cmds = append(cmds, Command{Kind: RemoveCollection, Path: coll})
		}
		return append(cmds, Command{Kind: RemoveCollection, Path: root}), nil
	default:
		return nil, fmt.Errorf("cannot plan removal of %s: no such item", root)
	}
}

func walk(ctx context.Context, c store.Client, coll string, cmds *[]Command, collections *[]string) error {
	entries, err := c.List(ctx, coll)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Kind == store.KindDataObject {
			*cmds = append(*cmds, Command{Kind: RemoveObject, Path: entry.Path})
			continue
		}
		*collections = append(*collections, entry.Path)
		if err := walk(ctx, c, entry.Path, cmds, collections); err != nil {
			return err
		}
	}
	return nil
}

// WriteCommands writes one shell-quoted removal command per plan entry,
// logging each as it goes.
func WriteCommands(plan []Command, w io.Writer, log *zap.Logger) error {
	for _, cmd := range plan {
		line := fmt.Sprintf("%s %s", cmd.Kind, shellQuote(cmd.Path))
		log.Info(line)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
