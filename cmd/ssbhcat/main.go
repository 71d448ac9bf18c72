// Command ssbhcat reads an SSBH file and prints a one-line summary: its
// format, version, and top-level field count.
package main

import (
	"fmt"
	"os"

	"github.com/ultimate-research/ssbh-go/formats"
	"github.com/ultimate-research/ssbh-go/internal/record"
	"github.com/ultimate-research/ssbh-go/ssbh"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: ssbhcat <file.ssbh>")
		os.Exit(1)
	}

	filename := os.Args[1]
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("ERROR: failed to read file: %v\n", err)
		os.Exit(1)
	}

	s, err := ssbh.ReadSsbh(data)
	if s == nil {
		fmt.Printf("ERROR: failed to parse %s: %v\n", filename, err)
		os.Exit(1)
	}
	if err != nil {
		if _, ok := err.(record.TrailingGarbage); ok {
			fmt.Printf("warning: %v\n", err)
		} else {
			fmt.Printf("ERROR: failed to parse %s: %v\n", filename, err)
			os.Exit(1)
		}
	}

	version, fields := summarize(s)
	fmt.Printf("%s: %s v%d.%d, %d top-level field(s)\n", filename, s.Kind, version.Major, version.Minor, fields)
}

func summarize(s *ssbh.Ssbh) (formats.Version, int) {
	switch s.Kind {
	case ssbh.KindHlpb:
		return s.Hlpb.Version, len(s.Hlpb.AimConstraints) + len(s.Hlpb.OrientConstraints)
	case ssbh.KindMatl:
		return s.Matl.Version, len(s.Matl.Entries)
	case ssbh.KindModl:
		return s.Modl.Version, len(s.Modl.Entries)
	case ssbh.KindMesh:
		return s.Mesh.Version, len(s.Mesh.Objects)
	case ssbh.KindSkel:
		return s.Skel.Version, len(s.Skel.BoneEntries)
	case ssbh.KindAnim:
		return s.Anim.Version, len(s.Anim.Groups) + len(s.Anim.Tracks)
	case ssbh.KindNlst:
		return s.Nlst.Version, len(s.Nlst.FileNames)
	case ssbh.KindNrpd:
		return s.Nrpd.Version, len(s.Nrpd.RenderPasses)
	case ssbh.KindNufx:
		return s.Nufx.Version, len(s.Nufx.ProgramsV0) + len(s.Nufx.ProgramsV1)
	case ssbh.KindShdr:
		return s.Shdr.Version, len(s.Shdr.Shaders)
	default:
		return formats.Version{}, 0
	}
}
