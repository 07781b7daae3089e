// Command analyze runs the full analysis pipeline on one radiograph and
// writes the report and overlay renderings to an output directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"xray-insight/internal/app"
	"xray-insight/internal/classifier"
	"xray-insight/internal/config"
	"xray-insight/internal/report"
	"xray-insight/internal/session"
	"xray-insight/internal/xray"
)

func main() {
	imagePath := flag.String("image", "", "Path to chest X-ray image (PNG, JPEG, or TIFF)")
	modelPath := flag.String("model", "", "Path to ONNX model (default: XRAY_MODEL_PATH)")
	metaPath := flag.String("meta", "", "Path to model metadata JSON (default: XRAY_MODEL_METADATA)")
	outDir := flag.String("out", "", "Directory for overlay PNGs and the report (default: stdout report only)")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: analyze -image <path> [-model <path>] [-meta <path>] [-out <dir>]")
		os.Exit(1)
	}

	cfg := config.Load()
	if *modelPath != "" {
		cfg.ModelPath = *modelPath
	}
	if *metaPath != "" {
		cfg.MetadataPath = *metaPath
	}
	if cfg.ModelPath == "" || cfg.MetadataPath == "" {
		fmt.Fprintln(os.Stderr, "No model configured: pass -model/-meta or set XRAY_MODEL_PATH/XRAY_MODEL_METADATA")
		os.Exit(1)
	}

	model, err := classifier.NewONNXModel(cfg.ModelPath, cfg.MetadataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load classifier: %v\n", err)
		os.Exit(1)
	}
	defer model.Close()

	radiograph, err := xray.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	defer radiograph.Close()

	fmt.Printf("Loaded %s: %dx%d pixels\n", filepath.Base(*imagePath),
		radiograph.Width(), radiograph.Height())

	analyzer := app.NewAnalyzer(model, nil, cfg)
	result, err := analyzer.Analyze(radiograph)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}
	defer result.Close()

	fmt.Println("\nRanked findings:")
	for _, p := range result.Predictions.Ranked() {
		marker := " "
		if _, ok := result.Maps[p.Class]; ok {
			marker = "*"
		}
		fmt.Printf("  %s %-28s %6.2f%%  [%s]\n", marker, p.Class, p.Confidence*100,
			report.RiskFor(p.Confidence))
	}
	fmt.Println("  (* = saliency map available)")

	fmt.Println()
	fmt.Println(result.Summary)

	if *outDir == "" {
		return
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	art, err := report.NewArtifacts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create artifacts: %v\n", err)
		os.Exit(1)
	}
	defer art.Close()

	if err := result.SaveOverlays(art); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render overlays: %v\n", err)
		os.Exit(1)
	}

	// Copy scoped artifacts into the persistent output directory
	for _, src := range art.Paths() {
		data, err := os.ReadFile(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", src, err)
			continue
		}
		dst := filepath.Join(*outDir, filepath.Base(src))
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", dst, err)
			continue
		}
		fmt.Printf("Wrote %s\n", dst)
	}

	reportPath := filepath.Join(*outDir, "report.txt")
	if err := os.WriteFile(reportPath, []byte(result.Detailed), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", reportPath)

	sessionPath := filepath.Join(*outDir, "reading.xrsession")
	sess := session.New()
	sess.SetImage(sessionPath, *imagePath)
	for _, p := range result.Predictions.Ranked() {
		sess.Findings = append(sess.Findings, session.Finding{
			Class:      p.Class,
			Confidence: p.Confidence,
		})
	}
	sess.Summary = result.Summary
	sess.Report = result.Detailed
	sess.Settings = session.Settings{
		OverlayAlpha: cfg.OverlayAlpha,
		MaxRegions:   cfg.MaxRegions,
	}
	if err := sess.Save(sessionPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write session: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", sessionPath)
}
