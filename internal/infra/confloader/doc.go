// Package confloader loads layered configuration with koanf.
//
// Sources are merged in this order, later ones winning:
//
//  1. Defaults supplied with WithDefaults
//  2. A YAML file supplied with WithConfigFile
//  3. Environment variables carrying the ISIS_ prefix
//  4. Overrides passed to LoadMap, typically from command-line flags
//
// Environment variables map to keys by dropping the prefix, lowercasing and
// turning the first underscore into a dot, so ISIS_STEGO_FALLBACK_NAME
// becomes stego.fallback_name.
package confloader
