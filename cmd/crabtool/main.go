// crabtool is a CLI utility for inspecting generated colonies and asset
// manifests.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Faultbox/creatura/internal/assets"
	"github.com/Faultbox/creatura/internal/creature"
	"github.com/Faultbox/creatura/internal/export"
	"github.com/Faultbox/creatura/internal/material"
	"github.com/Faultbox/creatura/internal/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "list", "ls":
		cmdList(args)
	case "describe", "d":
		cmdDescribe(args)
	case "assets":
		cmdAssets(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`crabtool - crab colony utility

Usage:
  crabtool <command> [options]

Commands:
  info <colony.yaml>              Show colony summary
  list <colony.yaml> [pattern]    List node paths (optional glob pattern)
  describe <seed>                 Compose one crab and print its parameters
  assets [manifest.yaml]          List claw and eye templates

Examples:
  crabtool info out/colony.yaml
  crabtool list out/colony.yaml "*Barnacle*"
  crabtool describe -curve-res 24 4000
  crabtool assets crabs.yaml`)
}

func readManifest(path string) *export.Manifest {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	m, err := export.ReadManifest(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return m
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: crabtool info <colony.yaml>")
		os.Exit(1)
	}
	m := readManifest(args[0])

	jointed, barnacles := 0, 0
	claws := make(map[string]int)
	eyes := make(map[string]int)
	for _, c := range m.Crabs {
		if c.Jointed {
			jointed++
		}
		for _, l := range c.Legs {
			barnacles += len(l.Barnacles)
		}
		for _, claw := range c.Claws {
			claws[claw.Template]++
		}
		eyes[c.Eyes.Template]++
	}

	fmt.Printf("Colony:     %s\n", args[0])
	fmt.Printf("Base seed:  %d\n", m.BaseSeed)
	fmt.Printf("Crabs:      %d of %d\n", len(m.Crabs), m.Count)
	fmt.Printf("Spacing:    %g\n", m.Spacing)
	fmt.Printf("Resolution: %dx%d\n", m.Resolution.Curve, m.Resolution.Radial)
	fmt.Printf("Jointed:    %d\n", jointed)
	fmt.Printf("Barnacles:  %d\n", barnacles)
	fmt.Println()
	printTally("Claws:", claws)
	printTally("Eyes:", eyes)
}

func printTally(title string, counts map[string]int) {
	type stat struct {
		name  string
		count int
	}
	var stats []stat
	for name, count := range counts {
		stats = append(stats, stat{name, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].name < stats[j].name
	})

	fmt.Println(title)
	for _, s := range stats {
		fmt.Printf("  %-14s %d\n", s.name, s.count)
	}
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N nodes (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: crabtool list <colony.yaml> [pattern]")
		os.Exit(1)
	}
	m := readManifest(fs.Arg(0))

	pattern := ""
	if fs.NArg() > 1 {
		pattern = strings.ToLower(fs.Arg(1))
	}

	count := 0
	for _, c := range m.Crabs {
		for _, n := range c.Nodes {
			path := c.Name + "/" + n.Path
			if pattern != "" {
				matched, _ := filepath.Match(pattern, strings.ToLower(filepath.Base(path)))
				if !matched && !strings.Contains(strings.ToLower(path), pattern) {
					continue
				}
			}
			fmt.Printf("%-48s pos=(%.3f, %.3f, %.3f)\n", path, n.Position.X, n.Position.Y, n.Position.Z)
			count++
			if *limit > 0 && count >= *limit {
				return
			}
		}
	}

	if pattern != "" {
		fmt.Fprintf(os.Stderr, "\n(%d nodes matched)\n", count)
	}
}

func cmdDescribe(args []string) {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	curveRes := fs.Int("curve-res", mesh.DefaultResolution.Curve, "Curve resolution")
	radialRes := fs.Int("radial-res", mesh.DefaultResolution.Radial, "Radial resolution")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: crabtool describe [-curve-res N] [-radial-res N] <seed>")
		os.Exit(1)
	}
	var seed int64
	if _, err := fmt.Sscan(fs.Arg(0), &seed); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid seed %q: %v\n", fs.Arg(0), err)
		os.Exit(1)
	}

	shaders := material.NewStandardShaders()
	mgr, err := assets.Builtin(shaders)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	c, err := creature.New(mgr, creature.WithShaders(shaders),
		creature.WithResolution(mesh.Resolution{Curve: *curveRes, Radial: *radialRes}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cr, err := c.Compose(seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := cr.Body.Params
	fmt.Printf("Seed:       %d\n", cr.Seed)
	fmt.Printf("Main:       %v\n", cr.Materials.Main.Color)
	fmt.Printf("Underside:  %v\n", cr.Materials.Underside.Color)
	fmt.Printf("Barnacle:   %v\n", cr.Materials.Barnacle.Color)
	fmt.Printf("Body:       direction=%.3f x=%.3f y1=%.3f y2=%.3f\n", b.Direction, b.XDistance, b.Y1, b.Y2)
	fmt.Printf("Shell:      scale=(%.3f, %.3f, %.3f)\n", cr.Body.Scale.X, cr.Body.Scale.Y, cr.Body.Scale.Z)
	fmt.Printf("Legs:       jointed=%v d1=%.3f d2=%.3f\n", cr.Jointed, cr.LegShape.Direction1, cr.LegShape.Direction2)
	for _, leg := range cr.Legs {
		fmt.Printf("  %-16s barnacles=%d\n", leg.Slot.Name, len(leg.Barnacles))
	}
	fmt.Printf("Left claw:  %s x%.3f\n", cr.LeftClaw.Template.Name, cr.LeftClaw.Scale)
	fmt.Printf("Right claw: %s x%.3f\n", cr.RightClaw.Template.Name, cr.RightClaw.Scale)
	fmt.Printf("Eyes:       %s\n", cr.Eyes.Template.Name)
	fmt.Printf("Nodes:      %d\n", cr.Root.Count())
}

func cmdAssets(args []string) {
	shaders := material.NewStandardShaders()
	var mgr *assets.Manager
	var err error
	if len(args) > 0 {
		mgr, err = assets.LoadManifest(args[0], shaders)
	} else {
		mgr, err = assets.Builtin(shaders)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printTemplates("Claws:", mgr.Claws())
	printTemplates("Eyes:", mgr.Eyes())
}

func printTemplates(title string, templates []*assets.Template) {
	fmt.Println(title)
	for i, t := range templates {
		fmt.Printf("  %d %s\n", i, t.Name)
		for _, s := range t.Surfaces {
			names := make([]string, 0, len(s.Materials))
			for _, m := range s.Materials {
				names = append(names, m.Name)
			}
			marker := ""
			if strings.Contains(strings.Join(names, ","), assets.EyeShellMarker) {
				marker = " *"
			}
			fmt.Printf("      %-10s %s%s\n", s.Name, strings.Join(names, ", "), marker)
		}
	}
}
