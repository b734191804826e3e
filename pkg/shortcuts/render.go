package shortcuts

import (
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/beevik/etree"
	"gopkg.in/ini.v1"
)

const bundleExecutable = "launch"

// renderURL renders a Windows Internet Shortcut
func renderURL(target, icon string) ([]byte, error) {
	cfg := ini.Empty()
	sec, err := cfg.NewSection("InternetShortcut")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to build shortcut")
	}
	sec.Key("URL").SetValue(fileURL(target))
	sec.Key("IconFile").SetValue(icon)
	sec.Key("IconIndex").SetValue("0")

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render shortcut")
	}
	return buf.Bytes(), nil
}

// fileURL converts a path to a file:/// URL
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// renderBat renders a batch file starting the target with its arguments
func renderBat(l Launcher) []byte {
	var b strings.Builder
	b.WriteString("@echo off\r\n")
	fmt.Fprintf(&b, "cd /d \"%s\"\r\n", l.WorkingDir)
	fmt.Fprintf(&b, "start \"\" \"%s\" %s\r\n", l.Target, l.Arguments)
	return []byte(b.String())
}

// renderDesktop renders a freedesktop desktop entry
func renderDesktop(l Launcher) []byte {
	exec := desktopQuote(l.Target)
	if l.Arguments != "" {
		exec += " " + l.Arguments
	}

	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", l.Name)
	fmt.Fprintf(&b, "Exec=%s\n", exec)
	fmt.Fprintf(&b, "Path=%s\n", l.WorkingDir)
	b.WriteString("Terminal=false\n")
	return []byte(b.String())
}

// desktopQuote quotes an argument of a desktop entry Exec key
func desktopQuote(arg string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(arg) + `"`
}

// renderScript renders the shell script inside an app bundle
func renderScript(l Launcher) []byte {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "cd %s || exit 1\n", shellQuote(l.WorkingDir))
	fmt.Fprintf(&b, "exec %s", shellQuote(l.Target))
	if l.Arguments != "" {
		b.WriteString(" " + l.Arguments)
	}
	b.WriteString(" \"$@\"\n")
	return []byte(b.String())
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// renderInfoPlist renders the Info.plist of an app bundle
func renderInfoPlist(l Launcher) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`)

	plist := doc.CreateElement("plist")
	plist.CreateAttr("version", "1.0")
	dict := plist.CreateElement("dict")

	entries := []struct{ key, value string }{
		{"CFBundleName", l.Name},
		{"CFBundleDisplayName", l.Name},
		{"CFBundleExecutable", bundleExecutable},
		{"CFBundleIdentifier", "io.codeplex." + bundleID(l.Name)},
		{"CFBundlePackageType", "APPL"},
		{"CFBundleInfoDictionaryVersion", "6.0"},
	}
	for _, e := range entries {
		dict.CreateElement("key").SetText(e.key)
		dict.CreateElement("string").SetText(e.value)
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render Info.plist")
	}
	return out, nil
}

// bundleID reduces name to the characters allowed in a bundle identifier
func bundleID(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
