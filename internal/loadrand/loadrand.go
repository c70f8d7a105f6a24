package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/schollz/progressbar/v3"
)

/* Random dataset load driver. It uploads a random dataset over the HTTP
 * API and then times the distance computation once per method, cold and
 * warm, so cache behaviour shows up in the numbers. */

func randRows(numRows, numDims int) [][]float32 {
	bar := progressbar.Default(int64(numRows), "generating rows")
	rows := make([][]float32, numRows)
	for i := 0; i < numRows; i++ {
		row := make([]float32, numDims)
		for j := 0; j < numDims; j++ {
			row[j] = rand.Float32()
		}
		rows[i] = row
		bar.Add(1)
	}
	return rows
}

func makeRequest(endpoint string, method string, path string, body any) map[string]any {
	var encBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Fatal(err)
		}
		encBody = bytes.NewReader(jsonBody)
	}
	req, err := http.NewRequest(method, endpoint+path, encBody)
	if err != nil {
		log.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	// ---------------------------
	startTime := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	log.Printf("%s %s -> %s in %s", method, path, resp.Status, time.Since(startTime))
	// ---------------------------
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Fatal(err)
	}
	return decoded
}

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8081/v1", "base url of the distmat server")
	numRows := flag.Int("rows", 1000, "number of rows to generate")
	numDims := flag.Int("dims", 128, "number of features per row")
	metric := flag.String("metric", "euclidean", "distance metric")
	flag.Parse()
	// ---------------------------
	rows := randRows(*numRows, *numDims)
	created := makeRequest(*endpoint, "POST", "/datasets", map[string]any{
		"name": fmt.Sprintf("loadrand-%dx%d", *numRows, *numDims),
		"rows": rows,
	})
	dataset, ok := created["dataset"].(map[string]any)
	if !ok {
		log.Fatalf("unexpected create response: %v", created)
	}
	datasetId := dataset["id"].(string)
	log.Printf("created dataset %s", datasetId)
	// ---------------------------
	// Second round hits the matrix cache.
	for round := 0; round < 2; round++ {
		for _, method := range []string{"naive", "rows", "gram"} {
			resp := makeRequest(*endpoint, "POST", "/datasets/"+datasetId+"/distances", map[string]any{
				"metric": *metric,
				"method": method,
			})
			log.Printf("method=%s cached=%v elapsedMicros=%v", method, resp["cached"], resp["elapsedMicros"])
		}
	}
}
