// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/nJurisch/equipment-pool/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Application: Equipment Pool\n")
	b.WriteString(strings.Join(info.Lines(), "\n"))

	return renderPage("ABOUT", b.String(), "esc: back")
}
