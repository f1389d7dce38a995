// Command ssdump prints the resolved part tree of an animation at given
// times. With -watch it re-prints whenever the document changes.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"

	"github.com/phanxgames/spritestudio"
)

const fileID spritestudio.FileID = 1

type app struct {
	store *spritestudio.Store
	key   spritestudio.PlayKey
	times []float64
	every bool
	out   io.Writer
}

func parseTimes(s string) ([]float64, error) {
	var times []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad time %q: %w", f, err)
		}
		times = append(times, v)
	}
	return times, nil
}

// resolveKey fills in the first pack and animation when none was asked for.
func (a *app) resolveKey(data *spritestudio.Data) error {
	if a.key.Pack == "" {
		names := data.PackNames()
		if len(names) == 0 {
			return fmt.Errorf("document has no packs")
		}
		a.key.Pack = names[0]
	}
	pack, ok := data.Pack(a.key.Pack)
	if !ok {
		return fmt.Errorf("pack %q not found (have %v)", a.key.Pack, data.PackNames())
	}
	if a.key.Animation == "" {
		names := pack.AnimationNames()
		if len(names) == 0 {
			return fmt.Errorf("pack %q has no animations", a.key.Pack)
		}
		a.key.Animation = names[0]
	}
	if _, ok := pack.Animation(a.key.Animation); !ok {
		return fmt.Errorf("animation %q not found in pack %q (have %v)", a.key.Animation, a.key.Pack, pack.AnimationNames())
	}
	return nil
}

func (a *app) dump() error {
	var trees []*spritestudio.Nodes
	if a.every {
		data, _ := a.store.Data(fileID)
		_, anim, _ := data.Lookup(spritestudio.AnimationRef{Pack: a.key.Pack, Animation: a.key.Animation})
		var err error
		trees, err = a.store.EvaluateRange(a.key, 0, anim.TotalSeconds(), spritestudio.DefaultRoot)
		if err != nil {
			return err
		}
	} else {
		for _, t := range a.times {
			tree, err := a.store.Evaluate(a.key, t, spritestudio.DefaultRoot)
			if err != nil {
				return err
			}
			if tree == nil {
				fmt.Fprintf(a.out, "t=%.3f: exhausted\n", t)
				continue
			}
			trees = append(trees, tree)
		}
	}
	for _, tree := range trees {
		printTree(a.out, tree, 0)
	}
	return nil
}

func printTree(w io.Writer, tree *spritestudio.Nodes, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(w, "%s%s frame %d\n", pad, tree.Ref, tree.Frame)
	hosts := make(map[int][]*spritestudio.Nodes)
	for _, sub := range tree.Instances {
		hosts[sub.HostPart] = append(hosts[sub.HostPart], sub)
	}
	for _, n := range tree.Nodes() {
		vis := "shown"
		if n.Hidden {
			vis = "hidden"
		}
		cell := "-"
		if n.Cell != nil {
			cell = fmt.Sprintf("%d:%d", n.Cell.MapID, n.Cell.CellID)
		}
		fmt.Fprintf(w, "%s  %-16s %-8s pos=(%.2f, %.2f) z=%.2f color=(%.2f %.2f %.2f %.2f) cell=%s %s\n",
			pad, n.Name, n.Type, n.Matrix.Tx, n.Matrix.Ty, n.Z(),
			n.Color.R, n.Color.G, n.Color.B, n.Color.A, cell, vis)
		for _, sub := range hosts[n.PartID] {
			printTree(w, sub, indent+2)
		}
	}
}

func (a *app) load(path string) error {
	r := spritestudio.LoadFile(fileID, path)
	if r.Err != nil {
		return r.Err
	}
	if err := a.resolveKey(r.Data); err != nil {
		return err
	}
	a.store.AddData(fileID, r.Data)
	return nil
}

func main() {
	path := flag.String("file", "", "YAML animation document.")
	pack := flag.String("pack", "", "Pack name (default: first pack).")
	anim := flag.String("anim", "", "Animation name (default: first animation).")
	times := flag.String("times", "0", "Comma separated times in seconds.")
	every := flag.Bool("fps-step", false, "Dump every frame of the animation instead of -times.")
	watch := flag.Bool("watch", false, "Re-dump when the document changes.")
	debug := flag.Bool("debug", false, "Log missing references.")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}
	spritestudio.SetDebug(*debug)

	ts, err := parseTimes(*times)
	if err != nil {
		log.Fatal(err)
	}
	sort.Float64s(ts)
	a := &app{
		store: spritestudio.NewStore(),
		key:   spritestudio.PlayKey{File: fileID, Pack: *pack, Animation: *anim},
		times: ts,
		every: *every,
		out:   os.Stdout,
	}
	if err := a.load(*path); err != nil {
		log.Fatal(err)
	}
	if err := a.dump(); err != nil {
		log.Fatal(err)
	}
	if !*watch {
		return
	}

	w, err := spritestudio.NewWatcher(map[spritestudio.FileID]string{fileID: *path})
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	log.Printf("Watching %s", *path)
	for {
		select {
		case r, ok := <-w.Reloads:
			if !ok {
				return
			}
			if r.Err != nil {
				log.Printf("Reload failed: %v", r.Err)
				continue
			}
			if err := a.resolveKey(r.Data); err != nil {
				log.Printf("Reload failed: %v", err)
				continue
			}
			a.store.AddData(r.File, r.Data)
			log.Println("Reloaded")
			if err := a.dump(); err != nil {
				log.Printf("Dump failed: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("Watch error: %v", err)
		case <-interrupt:
			return
		}
	}
}
