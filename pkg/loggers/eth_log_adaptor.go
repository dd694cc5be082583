package loggers

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/sirupsen/logrus"
)

var levelMap = map[log.Lvl]logrus.Level{
	log.LvlCrit:  logrus.ErrorLevel,
	log.LvlError: logrus.ErrorLevel,
	log.LvlWarn:  logrus.WarnLevel,
	log.LvlInfo:  logrus.InfoLevel,
	log.LvlDebug: logrus.DebugLevel,
	log.LvlTrace: logrus.TraceLevel,
}

// InitializeEthLog routes the logs of the embedded go-ethereum rpc server into logger.
func InitializeEthLog(logger *logrus.Entry) {
	log.Root().SetHandler(log.FuncHandler(func(r *log.Record) error {
		fields := make(logrus.Fields, len(r.Ctx)/2)
		for i := 0; i+1 < len(r.Ctx); i += 2 {
			key, ok := r.Ctx[i].(string)
			if !ok {
				continue
			}
			fields[key] = r.Ctx[i+1]
		}
		logger.WithTime(r.Time).WithFields(fields).Log(levelMap[r.Lvl], r.Msg)
		return nil
	}))
}
