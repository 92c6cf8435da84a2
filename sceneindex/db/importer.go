package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/venicegeo/eo-mapper/model"
	"github.com/venicegeo/eo-mapper/stac"
	"github.com/venicegeo/eo-mapper/util"
	"github.com/venicegeo/geojson-go/geojson"
)

//BeginIngestJobMessage asks the import loop to start a job now.
const BeginIngestJobMessage = "begin"

//AbortIngestJobMessage asks the import loop to abandon the job in progress.
const AbortIngestJobMessage = "abort"

const upsertSceneStatement = `
INSERT INTO scenes as s (
	scene_id,
	collection,
	product_uri,
	platform,
	tile_id,
	sensing_time,
	cloud_cover,
	resolution,
	epsg,
	sun_azimuth,
	sun_zenith,
	processing_level,
	product_type,
	bounds,
	assets)
VALUES
($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, ST_GeomFromGeoJSON($14), $15)
	ON CONFLICT (collection, scene_id) DO UPDATE
	SET cloud_cover = $7, assets = $15
	`

// wholeWorld is the search geometry used when refreshing the index; the
// catalog's own paging limits bound the result size
var wholeWorld = geojson.NewPolygon([][][]float64{{
	{-180, -90}, {180, -90}, {180, 90}, {-180, 90}, {-180, -90},
}})

//Importer manages the state for an ingest job refreshing the scenes table
//from the configured STAC catalog.
type Importer struct {
	collections    []string
	lookback       time.Duration
	dbConnProvider ConnectionProvider
	statusChan     chan chan string
}

//NewImporter intializes a new importer.
func NewImporter(collections []string, lookback time.Duration, dbConnProvider ConnectionProvider) *Importer {
	return &Importer{
		collections:    collections,
		lookback:       lookback,
		dbConnProvider: dbConnProvider,
		statusChan:     make(chan chan string, 10)}
}

//ImportWhile peforms the Import() task and waits for a channel.
//Note: this is blocking
//The function will exit when messageChan is closed and any in-progress jobs complete.
//To close quickly, send AbortIngestJobMessage on messageChan before closing it.
func (imp *Importer) ImportWhile(messageChan <-chan string, maxTimeBetweenJobs time.Duration) {
	log.Println("Job loop started with frequency", maxTimeBetweenJobs)

	previousStatus := "\tNone"

	scheduleTimer := time.NewTimer(maxTimeBetweenJobs)
	nextScheduledStartTime := time.Now().Add(maxTimeBetweenJobs)

	var startJob bool
	for {
		startJob = false

		//Wait for a start message.
		//Status is reported cooperatively, so deal with any requests while we wait.
		select {
		case <-scheduleTimer.C:
			log.Println("Maximum time between jobs elapsed.")
			startJob = true
		case msg, ok := <-messageChan:
			if !ok {
				return //The message channel has been closed. Exit.
			}
			switch msg {
			case BeginIngestJobMessage:
				log.Println("User requested job start.")
				startJob = true
			default:
				//ignore this message. We only want ones for "begin".
			}
		case respChan := <-imp.statusChan:
			select {
			//Try to send a response on the provided channel.
			case respChan <- fmt.Sprintf("%v\nStatus: Sleeping until %v\nPrevious job:\n%v",
				time.Now().Format("Mon Jan _2 15:04:05 2006"),
				nextScheduledStartTime.Format("Mon Jan _2 15:04:05 2006"),
				previousStatus): //good
			default:
				//Could not send immediately. We'll ignore it.
			}
		}

		if startJob {
			log.Println("Starting job.")
			previousStatus = imp.Import(messageChan)

			//Reset the timer. Rather than keep track of whether we've received on
			//the timer channel, just drain it in a general way.
			scheduleTimer.Stop()
		TimerDrainLoop:
			for {
				select {
				case <-scheduleTimer.C: //good, discard
				default:
					break TimerDrainLoop
				}
			}

			scheduleTimer.Reset(maxTimeBetweenJobs)
			nextScheduledStartTime = time.Now().Add(maxTimeBetweenJobs)
		}
	}
}

//GetStatus is a thread safe way to get information about the import operation.
func (imp *Importer) GetStatus() string {
	responseChan := make(chan string, 1) //Must have a buffer; the loop won't wait if it can't send.
	imp.statusChan <- responseChan
	status := <-responseChan
	return status
}

//Import refreshes the index from the STAC catalog a single time.
func (imp *Importer) Import(messageChan <-chan string) (result string) {
	logContext := &util.BasicLogContext{}
	stacContext := stac.NewContext()

	//Database connection is opened right before the ingest, and closed
	//immediately after.
	database, err := imp.dbConnProvider(logContext)
	if err != nil {
		return "Could not open database connection: " + err.Error()
	}
	defer database.Close()

	timeEnd := time.Now()
	timeStart := timeEnd.Add(-imp.lookback)

	total := 0
	for _, collection := range imp.collections {
		if aborted(messageChan) {
			return fmt.Sprintf("Aborted after %d scenes.", total)
		}

		scenes, err := stac.Search(stac.SearchOptions{
			Collection: collection,
			Intersects: wholeWorld,
			TimeStart:  timeStart,
			TimeEnd:    timeEnd,
		}, stacContext)
		if err != nil {
			util.LogSimpleErr(logContext, fmt.Sprintf("Failed to search collection %s for ingest.", collection), err)
			continue
		}

		inserted, err := UpsertScenes(database, scenes)
		if err != nil {
			util.LogSimpleErr(logContext, fmt.Sprintf("Failed to upsert scenes for collection %s.", collection), err)
			continue
		}
		total += inserted
	}

	return fmt.Sprintf("Ingested %d scenes at %v.", total, time.Now().Format("Mon Jan _2 15:04:05 2006"))
}

//UpsertScenes writes uniform-schema scenes into the scenes table.
func UpsertScenes(database *sql.DB, scenes []model.SceneMetadata) (int, error) {
	statement, err := database.Prepare(upsertSceneStatement)
	if err != nil {
		return 0, err
	}
	defer statement.Close()

	inserted := 0
	for _, scene := range scenes {
		boundsJSON, err := json.Marshal(scene.Geometry)
		if err != nil {
			return inserted, err
		}
		assetsJSON, err := json.Marshal(scene.Assets)
		if err != nil {
			return inserted, err
		}
		if _, err = statement.Exec(
			scene.SceneID,
			scene.Collection,
			scene.ProductURI,
			scene.Platform,
			scene.TileID,
			scene.SensingTime,
			scene.CloudCover,
			scene.Resolution,
			scene.EPSG,
			scene.SunAzimuth,
			scene.SunZenith,
			"", // processing level is a database-only attribute; catalogs encode it in the collection
			"",
			boundsJSON,
			assetsJSON,
		); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func aborted(messageChan <-chan string) bool {
	if messageChan == nil {
		return false
	}
	select {
	case msg, ok := <-messageChan:
		if !ok {
			return true
		}
		return msg == AbortIngestJobMessage
	default:
		return false
	}
}
