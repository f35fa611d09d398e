// Package qna defines the data model for structured question/answer seed
// datasets and their YAML parsing.
package qna
