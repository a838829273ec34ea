package annotation

import (
	"github.com/shivesh2334-ai/ECG-LEVEL-4/model"
	"github.com/shivesh2334-ai/ECG-LEVEL-4/route/shared"
	S "github.com/shivesh2334-ai/ECG-LEVEL-4/service"
)

func fetchDatasetByPath(c *shared.Context) (*model.Dataset, error) {
	datasetUuid := c.Param("dataset_uuid")

	service := shared.CreateService(S.DatasetService{}, c).(*S.DatasetService)

	return service.FetchByUuid(datasetUuid)
}

func resolveRecordPath(c *shared.Context) (*model.Dataset, int, error) {
	dataset, err := fetchDatasetByPath(c)

	if err != nil {
		return nil, 0, err
	}

	recordId := c.IntParam("record_id")

	service := shared.CreateService(S.DatasetService{}, c).(*S.DatasetService)

	if e := service.CheckRecordInDataset(dataset.Id, recordId); e != nil {
		return nil, 0, e
	}

	return dataset, recordId, nil
}
