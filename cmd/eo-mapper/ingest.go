package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"

	db "github.com/venicegeo/eo-mapper/sceneindex/db"

	_ "github.com/lib/pq"
	cli "gopkg.in/urfave/cli.v1"
)

const ingestCollectionsEnv = "INGEST_COLLECTIONS"
const ingestLookbackEnv = "INGEST_LOOKBACK"
const ingestFrequencyEnv = "INGEST_FREQUENCY"
const defaultIngestFrequency = 24 * time.Hour
const defaultIngestLookback = 30 * 24 * time.Hour

//ingestScheduleAction starts the worker process and an http server
func ingestScheduleAction(*cli.Context) {
	portStr := getPortStr()

	collections := strings.Split(os.Getenv(ingestCollectionsEnv), ",")
	importer := db.NewImporter(collections, getLookbackDuration(), getDbConnectionFunc)

	//Create the channel that sends the start/stop messages to the Importer.
	messageChan := make(chan string, 5) //small buffer.

	//Start the sleep/ingest loop.
	go importer.ImportWhile(messageChan, getTimerDuration())

	//Set up an http router
	router := mux.NewRouter()
	router.HandleFunc("/ingest/", func(resp http.ResponseWriter, req *http.Request) {
		handleImportStatus(importer, resp, req)
	})
	router.HandleFunc("/ingest/start", func(resp http.ResponseWriter, req *http.Request) {
		handleForceStartIngest(importer, messageChan, resp, req)
	})
	router.HandleFunc("/ingest/cancel", func(resp http.ResponseWriter, req *http.Request) {
		handleCancel(importer, messageChan, resp, req)
	})

	log.Println("Listening on port", portStr)
	log.Fatal(http.ListenAndServe(portStr, router))
}

//handleImportStatus requests the status from the importer and writes it out.
func handleImportStatus(imp *db.Importer, writer http.ResponseWriter, req *http.Request) {
	fmt.Fprintln(writer, imp.GetStatus())
}

//handleForceStartIngest sends a "begin" message to the importer and returns the new status to the user.
func handleForceStartIngest(imp *db.Importer, messageChan chan<- string, writer http.ResponseWriter, req *http.Request) {
	select {
	case messageChan <- db.BeginIngestJobMessage:
		fmt.Fprintln(writer, "Begin job request submitted.")
	default:
		fmt.Fprintln(writer, "Error submitting request.")
	}
	fmt.Fprintln(writer, imp.GetStatus())
}

//handleCancel sends a "cancel" message to the importer and returns the new status to the user.
func handleCancel(imp *db.Importer, cancelChan chan<- string, writer http.ResponseWriter, req *http.Request) {
	select {
	case cancelChan <- db.AbortIngestJobMessage:
		fmt.Fprintln(writer, "Cancel request submitted.")
	default:
		fmt.Fprintln(writer, "Error submitting cancel request.")
	}
	fmt.Fprintln(writer, imp.GetStatus())
}

func getTimerDuration() time.Duration {
	duration, _ := time.ParseDuration(os.Getenv(ingestFrequencyEnv))

	if duration < (time.Minute) {
		log.Printf("Specified duration of %v is too small. Setting to default.", duration)
		duration = defaultIngestFrequency
	}

	return duration
}

func getLookbackDuration() time.Duration {
	duration, _ := time.ParseDuration(os.Getenv(ingestLookbackEnv))

	if duration < time.Hour {
		duration = defaultIngestLookback
	}

	return duration
}
