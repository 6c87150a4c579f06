// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

/*
Package schemarst renders reStructuredText documentation pages from JSON and
YAML schema documents.

A document is decoded into Mapping, Sequence and Scalar values, turned into an
ordered tree of labeled nodes and rendered node by node: titles, bulleted enum
lists, cross-reference links and key/value fields.

Render schema bytes:

	schemaBytes, err := os.ReadFile("person.yml")
	if err != nil {
		return err
	}

	rst, err := schemarst.Render(schemaBytes, schemarst.Options{
		SourcePath: "person.yml",
	})
	if err != nil {
		return err
	}

	fmt.Println(rst)

Render directly from file, keeping every key:

	rst, err := schemarst.RenderFile("person.yml", schemarst.Options{
		ExcludedKeys: []string{},
	})

Convert a whole directory tree with index pages:

	report, err := schemarst.ConvertDir(ctx, "schemas", "docs/schemas", schemarst.BatchOptions{
		Workers: 4,
	})
	if err != nil {
		return err
	}

	for _, file := range report.Files {
		fmt.Println(file.Name)
	}

Report stale generated documents:

	drifts, err := schemarst.CheckDir(ctx, "schemas", "docs/schemas", schemarst.BatchOptions{})
	if err != nil {
		return err
	}

	for _, drift := range drifts {
		fmt.Println(drift.Output)
		fmt.Println(drift.Patch)
	}

Work with the tree directly:

	root := schemarst.NewNode("person.json", nil)
	schemarst.BuildTree(document, root, schemarst.BuildOptions{
		ExcludedKeys: schemarst.DefaultExcludedKeys(),
	})

	body, err := schemarst.RenderTree(root)
*/
package schemarst
