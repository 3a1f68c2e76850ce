package mcpserver

// RecordFormatContract describes the canonical record file formats that
// tool-calling consumers should follow when creating or updating records.
const RecordFormatContract = `# Stagehand Record Format Contract

Every record is one YAML file named after its slug. Slugs are lower-case,
hyphen-separated, with all other punctuation stripped.

## Gear (data/gear/<slug>.yaml)

Slug: ` + "`" + `slug(manufacturer)-slug(name)` + "`" + ` (e.g. ` + "`" + `boss-bd-2-blues-driver` + "`" + `).
Plain YAML document, field order preserved:

` + "```" + `yaml
name: BD-2 Blues Driver          # REQUIRED
manufacturer: BOSS               # REQUIRED
category: Pedal                  # REQUIRED - Pedal | Synth
technology: Analog               # REQUIRED - Analog | Digital | Hybrid
types:                           # OPTIONAL - list of strings
  - Overdrive
controls:                        # OPTIONAL - control names as labeled
  - Level
  - Tone
  - Gain
url: https://example.com/bd2     # OPTIONAL
description: Classic blues overdrive.  # OPTIONAL
` + "```" + `

## Live performance (data/live/<date>-<slug>.yaml)

Slug: ` + "`" + `<date>-slug(title)` + "`" + ` (e.g. ` + "`" + `2025-10-11-noise-space-xv` + "`" + `).
Frontmatter document: YAML header between ` + "`" + `---` + "`" + ` fences, then a
free-text description body after a blank line.

` + "```" + `yaml
---
title: Noise Space XV            # REQUIRED
date: "2025-10-11"               # REQUIRED - YYYY-MM-DD
venue: Klub Mechanik             # REQUIRED
location: Warsaw                 # REQUIRED
draft: false                     # written automatically
poster: poster-2025.jpg          # OPTIONAL
event_link: https://...          # OPTIONAL
other_performers:                # OPTIONAL - list of {name, url?}
  - name: Some Act
    url: https://...
---

An evening of harsh noise and modular improvisation.
` + "```" + `

## Media item (data/media/<date>-<slug>.yaml)

Same frontmatter shape. ` + "`" + `type` + "`" + ` is ` + "`" + `picture` + "`" + ` or ` + "`" + `video` + "`" + `;
pictures require ` + "`" + `image` + "`" + ` and ` + "`" + `author` + "`" + `, videos require ` + "`" + `youtube_id` + "`" + `.
Optional: ` + "`" + `author_url` + "`" + `, ` + "`" + `gig` + "`" + ` (related live slug), ` + "`" + `description` + "`" + `.

## Rules

1. Optional fields that have no value are omitted, never written empty.
2. Field values may use any language, including non-Latin scripts; field
   names and slugs are ASCII.
3. Renaming the fields a slug derives from (date, title, manufacturer, name)
   renames the file; there is never more than one file per record.
4. Archived records live in an ` + "`" + `archived/` + "`" + ` sibling directory with
   identical file names and content.
`
