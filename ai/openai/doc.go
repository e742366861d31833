// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package openai provides term expansion using OpenAI-compatible chat APIs.
//
// This package implements the ai.Provider interface using the langchaingo
// library to communicate with OpenAI or OpenAI-compatible services (such as
// Groq, Ollama, LocalAI, or vLLM). The model is asked for a comma-separated
// list of short phrases similar to the search term; the answer is split,
// trimmed, and entries of a single character are dropped.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithHost("https://api.groq.com/openai"),  // /v1 added automatically
//	    ai.WithModel("meta-llama/llama-4-scout-17b-16e-instruct"),
//	    ai.WithAPIKey(os.Getenv("SMARTFIND_API_KEY")),
//	)
//
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	related, err := provider.Expander().ExpandTerms(ctx, "cat")
package openai
