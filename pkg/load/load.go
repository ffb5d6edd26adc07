// Package load reads pipeline definitions from local files or go-getter
// sources, so a team can keep shared pipelines in a repository and run them
// by URL.
package load

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	mallctl "github.com/jiffoo/mallctl/pkg"
	"github.com/jiffoo/mallctl/pkg/util/fileutil"
)

// Source resolves src either as a local file or, failing that, as a
// go-getter source (git::, https://, s3:: and friends).
func Source(src string) (*mallctl.PipelineDef, error) {
	if fileutil.Exists(src) {
		return File(src)
	}
	return remote(src)
}

// File loads a pipeline definition from a local path.
func File(path string) (*mallctl.PipelineDef, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading pipeline %s", path)
	}

	def, err := mallctl.ReadPipelineDefFromBytes(data)
	if err != nil {
		return nil, errors.Annotatef(err, "loading pipeline %s", path)
	}

	return def, nil
}

func remote(src string) (*mallctl.PipelineDef, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Trace(err)
	}

	dir, err := ioutil.TempDir("", "mallctl-pipeline")
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer os.RemoveAll(dir)

	parts := strings.Split(src, "/")
	dst := filepath.Join(dir, parts[len(parts)-1])

	logrus.Debugf("downloading %s to %s", src, dst)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return nil, errors.Annotatef(err, "getting pipeline %s", src)
	}

	return File(dst)
}
