package compiledb

// schemaJSON describes the compile_commands.json format as emitted by CMake
// and Bear: an array of translation unit records, each carrying a directory,
// a file, and either a command string or an argument vector.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["directory", "file"],
    "anyOf": [
      {"required": ["command"]},
      {"required": ["arguments"]}
    ],
    "properties": {
      "directory": {"type": "string", "minLength": 1},
      "command": {"type": "string", "minLength": 1},
      "arguments": {
        "type": "array",
        "items": {"type": "string"},
        "minItems": 1
      },
      "file": {"type": "string", "minLength": 1},
      "output": {"type": "string"}
    }
  }
}`
