// OpenClaw Touch Portal Plugin
// Copyright (c) 2026 The OpenClawTPplugin Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of the OpenClaw Touch Portal Plugin.
//
// The OpenClaw Touch Portal Plugin is free software: you can redistribute
// it and/or modify it under the terms of the GNU General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// The OpenClaw Touch Portal Plugin is distributed in the hope that it will
// be useful, but WITHOUT ANY WARRANTY; without even the implied warranty
// of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with the OpenClaw Touch Portal Plugin.  If not, see
// <http://www.gnu.org/licenses/>.

// maketpp packages a built plugin binary into a .tpp archive, the zip
// format Touch Portal imports plugins from. The entry.tp document is
// generated fresh so the archive always matches the compiled actions.
package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dontcallmejames/OpenClawTPplugin/pkg/config"
	"github.com/dontcallmejames/OpenClawTPplugin/pkg/service"
)

func main() {
	if len(os.Args) < 4 {
		_, _ = fmt.Println("Usage: go run ./scripts/tasks/maketpp <build_dir> <app_bin> <tpp_name>")
		os.Exit(1)
	}

	buildDir := os.Args[1]
	appBin := os.Args[2]
	tppName := os.Args[3]

	if _, err := os.Stat(buildDir); os.IsNotExist(err) {
		_, _ = fmt.Printf("The specified directory '%s' does not exist\n", buildDir)
		os.Exit(1)
	}

	appPath := filepath.Join(buildDir, appBin)
	if _, err := os.Stat(appPath); os.IsNotExist(err) {
		_, _ = fmt.Printf("The specified binary file '%s' does not exist\n", appPath)
		os.Exit(1)
	}

	entryPath := filepath.Join(buildDir, "entry.tp")
	if err := writeEntryDocument(entryPath); err != nil {
		_, _ = fmt.Printf("Error writing entry document: %v\n", err)
		os.Exit(1)
	}

	tppPath := filepath.Join(buildDir, tppName)
	_ = os.Remove(tppPath)

	if err := createTppFile(tppPath, appPath, entryPath); err != nil {
		_, _ = fmt.Printf("Error creating tpp archive: %v\n", err)
		os.Exit(1)
	}
}

func writeEntryDocument(path string) error {
	data, err := service.BuildEntry().JSON()
	if err != nil {
		return fmt.Errorf("error building entry document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // distributed file
		return fmt.Errorf("error writing entry document: %w", err)
	}
	return nil
}

// createTppFile zips the binary and entry document under a single plugin
// folder, the layout Touch Portal expects when importing.
func createTppFile(tppPath, appPath, entryPath string) error {
	tppFile, err := os.Create(tppPath)
	if err != nil {
		return fmt.Errorf("error creating tpp file: %w", err)
	}
	defer func(tppFile *os.File) {
		_ = tppFile.Close()
	}(tppFile)

	zipWriter := zip.NewWriter(tppFile)
	defer func(zipWriter *zip.Writer) {
		_ = zipWriter.Close()
	}(zipWriter)

	filesToAdd := []struct {
		path    string
		arcname string
	}{
		{entryPath, filepath.Join(config.AppName, filepath.Base(entryPath))},
		{appPath, filepath.Join(config.AppName, filepath.Base(appPath))},
	}

	for _, file := range filesToAdd {
		if err := addFileToZip(zipWriter, file.path, file.arcname); err != nil {
			return fmt.Errorf("error adding file to tpp: %w", err)
		}
	}

	return nil
}

func addFileToZip(zipWriter *zip.Writer, filePath, arcname string) error {
	file, err := os.Open(filePath) //nolint:gosec // paths come from task arguments
	if err != nil {
		return err
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = arcname
	header.Method = zip.Deflate

	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(writer, file)
	return err
}
